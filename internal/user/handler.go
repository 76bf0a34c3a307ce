package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/warin29/library-store-backend/internal/session"
)

// Handler wires the identity pages: login, register, admin login, profile
// and logout. Mutating routes accept form bodies and answer with a redirect
// plus a flash message; GET routes return the data the page renders.
type Handler struct {
	service  *Service
	sessions *session.Manager
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/login", h.loginPage)
	app.Post("/login", h.login)
	app.Get("/register", h.registerPage)
	app.Post("/register", h.register)
	app.Get("/admin_login", h.loginPage)
	app.Post("/admin_login", h.adminLogin)

	app.Get("/logout", h.sessions.RequireUser, h.logout)
	app.Get("/profile", h.sessions.RequireUser, h.profile)
	app.Post("/profile", h.sessions.RequireUser, h.updateProfile)
}

func (h *Handler) loginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flash": h.sessions.PopFlash(c)})
}

func (h *Handler) registerPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flash": h.sessions.PopFlash(c)})
}

func (h *Handler) login(c *fiber.Ctx) error {
	username := c.FormValue("userName")
	password := c.FormValue("password")

	if username == "" || password == "" {
		h.sessions.Flash(c, "Please fill out all fields")
		return c.Redirect("/login", fiber.StatusFound)
	}

	u, err := h.service.Authenticate(username, password)
	switch err {
	case nil:
	case ErrNotFound:
		h.sessions.Flash(c, "Username does not exist")
		return c.Redirect("/login", fiber.StatusFound)
	case ErrInvalidCredentials:
		h.sessions.Flash(c, "Incorrect password")
		return c.Redirect("/login", fiber.StatusFound)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.sessions.SignIn(c, session.Identity{UserID: u.ID, IsAdmin: u.IsAdmin}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	h.sessions.Flash(c, "Login successful")
	return c.Redirect("/profile", fiber.StatusFound)
}

// adminLogin runs the same credential check as login but lands on the admin
// dashboard; the admin guard on that page catches non-admin accounts.
func (h *Handler) adminLogin(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" {
		h.sessions.Flash(c, "Please fill out all fields")
		return c.Redirect("/admin_login", fiber.StatusFound)
	}

	u, err := h.service.Authenticate(username, password)
	switch err {
	case nil:
	case ErrNotFound:
		h.sessions.Flash(c, "Username does not exist")
		return c.Redirect("/admin_login", fiber.StatusFound)
	case ErrInvalidCredentials:
		h.sessions.Flash(c, "Incorrect password")
		return c.Redirect("/admin_login", fiber.StatusFound)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.sessions.SignIn(c, session.Identity{UserID: u.ID, IsAdmin: u.IsAdmin}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	h.sessions.Flash(c, "Login successful")
	return c.Redirect("/admin_dash", fiber.StatusFound)
}

func (h *Handler) register(c *fiber.Ctx) error {
	username := c.FormValue("userName")
	name := c.FormValue("fullName")
	password := c.FormValue("password1")
	confirm := c.FormValue("password2")

	if username == "" || password == "" || confirm == "" {
		h.sessions.Flash(c, "Please fill out all fields")
		return c.Redirect("/register", fiber.StatusFound)
	}
	if password != confirm {
		h.sessions.Flash(c, "Passwords do not match")
		return c.Redirect("/register", fiber.StatusFound)
	}

	if _, err := h.service.Register(username, password, name); err != nil {
		if err == ErrUsernameExists {
			h.sessions.Flash(c, "Username already exists")
			return c.Redirect("/register", fiber.StatusFound)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Redirect("/login", fiber.StatusFound)
}

func (h *Handler) profile(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	u, err := h.service.GetByID(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(fiber.Map{"user": u, "flash": h.sessions.PopFlash(c)})
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	identity, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	username := c.FormValue("userName")
	currentPassword := c.FormValue("cpassword")
	password := c.FormValue("password")
	name := c.FormValue("fullName")

	if username == "" || currentPassword == "" || password == "" {
		h.sessions.Flash(c, "Please fill out all the required fields")
		return c.Redirect("/profile", fiber.StatusFound)
	}

	if _, err := h.service.UpdateProfile(identity.UserID, username, currentPassword, password, name); err != nil {
		switch err {
		case ErrInvalidCredentials:
			h.sessions.Flash(c, "Incorrect password")
			return c.Redirect("/profile", fiber.StatusFound)
		case ErrUsernameExists:
			h.sessions.Flash(c, "Username already exists")
			return c.Redirect("/profile", fiber.StatusFound)
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	h.sessions.Flash(c, "Profile updated successfully")
	return c.Redirect("/profile", fiber.StatusFound)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.sessions.SignOut(c); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Redirect("/", fiber.StatusFound)
}
