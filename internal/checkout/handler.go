package checkout

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
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

	app.Post("/checkout", auth, h.checkout)
	app.Get("/payments", auth, h.pendingPayments)
	app.Post("/payments/:id<int>", auth, h.pay)
	app.Get("/orders", auth, h.history)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if _, err := h.service.Checkout(identity.UserID, time.Now()); err != nil {
		if err == ErrEmptyCart {
			h.sessions.Flash(c, "Cart is empty")
			return c.Redirect("/cart", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Order placed successfully")
	return c.Redirect("/payments", fiber.StatusFound)
}

func (h *Handler) pendingPayments(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	pending, err := h.service.PendingPayments(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"payments": pending, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) pay(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	transactionID, _ := strconv.Atoi(c.Params("id"))
	switch _, err := h.service.Pay(identity.UserID, transactionID, time.Now()); err {
	case nil:
	case ErrNotFound:
		h.sessions.Flash(c, "Transaction does not exist")
		return c.Redirect("/payments", fiber.StatusFound)
	case ErrForbidden:
		h.sessions.Flash(c, "You cannot pay for another user's order")
		return c.Redirect("/payments", fiber.StatusFound)
	case ErrAlreadyPaid:
		h.sessions.Flash(c, "This order has already been paid")
		return c.Redirect("/orders", fiber.StatusFound)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Payment successful")
	return c.Redirect("/orders", fiber.StatusFound)
}

func (h *Handler) history(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	transactions, err := h.service.History(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"transactions": transactions, "flash": h.sessions.PopFlash(c)})
}
