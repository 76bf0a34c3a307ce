package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/warin29/library-store-backend/internal/book"
	"github.com/warin29/library-store-backend/internal/session"
)

type Handler struct {
	service  *Service
	sessions *session.Manager
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	auth := h.sessions.RequireUser

	app.Post("/add_to_cart/:book_id<int>", auth, h.add)
	app.Get("/cart", auth, h.list)
	app.Post("/cart/:id<int>/delete", auth, h.remove)
}

func (h *Handler) add(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	bookID, _ := strconv.Atoi(c.Params("book_id"))
	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		h.sessions.Flash(c, "Please enter a valid quantity")
		return c.Redirect("/user_dash", fiber.StatusFound)
	}

	switch err := h.service.Add(identity.UserID, bookID, quantity); err {
	case nil:
	case ErrQuantityRange:
		h.sessions.Flash(c, "Quantity must be between 1 and 5")
		return c.Redirect("/user_dash", fiber.StatusFound)
	case ErrQuantityLimit:
		h.sessions.Flash(c, "You cannot have more than 5 copies of a book in your cart")
		return c.Redirect("/user_dash", fiber.StatusFound)
	case book.ErrNotFound:
		h.sessions.Flash(c, "Book does not exist")
		return c.Redirect("/user_dash", fiber.StatusFound)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Book added to cart")
	return c.Redirect("/user_dash", fiber.StatusFound)
}

func (h *Handler) list(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	lines, total, err := h.service.List(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"items": lines, "total": total, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cartID, _ := strconv.Atoi(c.Params("id"))
	switch err := h.service.Remove(identity.UserID, cartID); err {
	case nil:
	case ErrNotFound:
		h.sessions.Flash(c, "Cart item does not exist")
		return c.Redirect("/cart", fiber.StatusFound)
	case ErrForbidden:
		h.sessions.Flash(c, "You cannot modify another user's cart")
		return c.Redirect("/cart", fiber.StatusFound)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Book removed from cart")
	return c.Redirect("/cart", fiber.StatusFound)
}
