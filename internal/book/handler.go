package book

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/warin29/library-store-backend/internal/session"
)

// Handler covers the admin book pages, the member browsing dashboard and
// the pdf upload endpoint.
type Handler struct {
	service   *Service
	sessions  *session.Manager
	uploadDir string
}

func NewHandler(service *Service, sessions *session.Manager, uploadDir string) *Handler {
	return &Handler{service: service, sessions: sessions, uploadDir: uploadDir}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	admin := h.sessions.RequireAdmin

	app.Get("/book/add/:section_id<int>", admin, h.addPage)
	app.Post("/book/add/:section_id<int>", admin, h.add)
	app.Get("/book/:id<int>/edit", admin, h.editPage)
	app.Post("/book/:id<int>/edit", admin, h.edit)
	app.Get("/book/:id<int>/delete", admin, h.deletePage)
	app.Post("/book/:id<int>/delete", admin, h.delete)
	app.Post("/upload", admin, h.upload)

	app.Get("/user_dash", h.sessions.RequireUser, h.userDashboard)
}

func (h *Handler) userDashboard(c *fiber.Ctx) error {
	name := c.Query("name")
	maxPrice := 0.0
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			maxPrice = p
		}
	}

	books, err := h.service.Browse(name, maxPrice)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"books": books, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) addPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"sectionId": c.Params("section_id"), "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) add(c *fiber.Ctx) error {
	sectionID, _ := strconv.Atoi(c.Params("section_id"))

	name := c.FormValue("name")
	content := c.FormValue("content")
	author := c.FormValue("author")
	priceRaw := c.FormValue("price")
	if name == "" || content == "" || author == "" || priceRaw == "" {
		h.sessions.Flash(c, "Please fill out all fields")
		return c.Redirect("/book/add/"+c.Params("section_id"), fiber.StatusFound)
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price <= 0 {
		h.sessions.Flash(c, "Price must be a positive number")
		return c.Redirect("/book/add/"+c.Params("section_id"), fiber.StatusFound)
	}

	_, err = h.service.Create(Book{
		Name:      name,
		Content:   content,
		Author:    author,
		Price:     price,
		SectionID: sectionID,
	})
	if err != nil {
		if err == ErrSectionNotFound {
			h.sessions.Flash(c, "Section does not exist")
			return c.Redirect("/admin_dash", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Book added successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

func (h *Handler) editPage(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	b, err := h.service.Get(id)
	if err != nil {
		h.sessions.Flash(c, "Book does not exist")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"book": b, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) edit(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if _, err := h.service.Get(id); err != nil {
		h.sessions.Flash(c, "Book does not exist")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}

	name := c.FormValue("name")
	content := c.FormValue("content")
	author := c.FormValue("author")
	priceRaw := c.FormValue("price")
	if name == "" || content == "" || author == "" || priceRaw == "" {
		h.sessions.Flash(c, "Please fill out all fields")
		return c.Redirect("/book/"+c.Params("id")+"/edit", fiber.StatusFound)
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price <= 0 {
		h.sessions.Flash(c, "Price must be a positive number")
		return c.Redirect("/book/"+c.Params("id")+"/edit", fiber.StatusFound)
	}

	if _, err := h.service.Update(id, Book{Name: name, Content: content, Author: author, Price: price}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Book updated successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

func (h *Handler) deletePage(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	b, err := h.service.Get(id)
	if err != nil {
		h.sessions.Flash(c, "Book does not exist")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"book": b, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			h.sessions.Flash(c, "Book does not exist")
			return c.Redirect("/admin_dash", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "Book deleted successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

// upload accepts a single .pdf file and stores it under the configured
// upload directory with a sanitized name.
func (h *Handler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		h.sessions.Flash(c, "No file part")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}
	if file.Filename == "" {
		h.sessions.Flash(c, "No selected file")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		h.sessions.Flash(c, "Invalid file type.")
		return c.Redirect("/admin_dash", fiber.StatusFound)
	}

	// the upload directory may not exist yet on a fresh deploy
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	dest := filepath.Join(h.uploadDir, secureFilename(file.Filename))
	if err := c.SaveFile(file, dest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.sessions.Flash(c, "File uploaded successfully")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

// secureFilename strips path components and keeps only safe runes, so a
// client-supplied name cannot escape the upload directory.
func secureFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "file.pdf"
	}
	return out
}
