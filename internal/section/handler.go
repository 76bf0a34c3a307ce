package section

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/warin29/library-store-backend/internal/session"
)

// Handler exposes the admin catalog-section pages plus the JSON section
// listing used by the admin frontend.
type Handler struct {
	service  *Service
	sessions *session.Manager
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	admin := h.sessions.RequireAdmin

	app.Get("/admin_dash", admin, h.dashboard)
	app.Get("/section/add", admin, h.addPage)
	app.Post("/section/add", admin, h.add)
	app.Get("/section/:id<int>/edit", admin, h.editPage)
	app.Post("/section/:id<int>/edit", admin, h.edit)
	app.Get("/section/:id<int>/delete", admin, h.deletePage)
	app.Post("/section/:id<int>/delete", admin, h.delete)
	app.Get("/api/section/get", admin, h.listJSON)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	summaries, err := h.service.ListWithCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"sections": summaries, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) addPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flash": h.sessions.PopFlash(c)})
}

func (h *Handler) add(c *fiber.Ctx) error {
	name := c.FormValue("name")
	description := c.FormValue("description")

	if name == "" || description == "" {
		h.sessions.Flash(c, "Please fill out all fields")
		return c.Redirect("/section/add", fiber.StatusFound)
	}

	if _, err := h.service.Create(name, description, time.Now()); err != nil {
		if err == ErrNameExists {
			h.sessions.Flash(c, "Section name already exists")
			return c.Redirect("/section/add", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Section added successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

func (h *Handler) editPage(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	s, err := h.service.Get(id)
	if err != nil {
		h.sessions.Flash(c, "Section does not exist")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"section": s, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) edit(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if _, err := h.service.Get(id); err != nil {
		h.sessions.Flash(c, "Section does not exist")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}

	name := c.FormValue("name")
	dateCreated := c.FormValue("date_created")
	description := c.FormValue("description")
	if name == "" || dateCreated == "" || description == "" {
		h.sessions.Flash(c, "Please fill all the fields")
		return c.Redirect("/section/"+c.Params("id")+"/edit", fiber.StatusFound)
	}

	if _, err := h.service.Update(id, name, dateCreated, description); err != nil {
		if err == ErrNameExists {
			h.sessions.Flash(c, "Section name already exists")
			return c.Redirect("/section/"+c.Params("id")+"/edit", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Section updated successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

func (h *Handler) deletePage(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	s, err := h.service.Get(id)
	if err != nil {
		h.sessions.Flash(c, "Section does not exist")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"section": s, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			h.sessions.Flash(c, "Section does not exist")
			return c.Redirect("/admin_dash", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Section deleted successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

// listJSON serves the admin-only id/name listing at /api/section/get.
func (h *Handler) listJSON(c *fiber.Ctx) error {
	sections, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	out := make([]fiber.Map, 0, len(sections))
	for _, s := range sections {
		out = append(out, fiber.Map{"id": s.ID, "name": s.Name})
	}
	return c.JSON(fiber.Map{"sections": out})
}
