package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session_id"
	flashCookie   = "flash_id"
	identityLocal = "identity"
)

// Manager ties the session store to the request cycle: cookies, flash
// messages and the route guards.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SignIn creates a session for identity and hands the id to the client.
func (m *Manager) SignIn(c *fiber.Ctx, identity Identity) error {
	id, err := m.store.Create(identity)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
	})
	return nil
}

// SignOut drops the server-side session and expires the cookie.
func (m *Manager) SignOut(c *fiber.Ctx) error {
	if id := c.Cookies(sessionCookie); id != "" {
		if err := m.store.Delete(id); err != nil {
			return err
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return nil
}

// Current resolves the request to an identity without enforcing one.
func (m *Manager) Current(c *fiber.Ctx) (Identity, bool) {
	id := c.Cookies(sessionCookie)
	if id == "" {
		return Identity{}, false
	}
	identity, ok, err := m.store.Get(id)
	if err != nil || !ok {
		return Identity{}, false
	}
	return identity, true
}

// Flash stores a one-shot status message for the requesting client. The
// flash id lives in its own cookie so messages survive sign-in/sign-out.
func (m *Manager) Flash(c *fiber.Ctx, message string) {
	id := c.Cookies(flashCookie)
	if id == "" {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     flashCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
		})
	}
	// a lost flash message is not worth failing the request over
	_ = m.store.SetFlash(id, message)
}

// PopFlash returns the pending flash message, if any, and clears it.
func (m *Manager) PopFlash(c *fiber.Ctx) string {
	id := c.Cookies(flashCookie)
	if id == "" {
		return ""
	}
	msg, err := m.store.PopFlash(id)
	if err != nil {
		return ""
	}
	return msg
}

// RequireUser guards routes that need any authenticated user.
func (m *Manager) RequireUser(c *fiber.Ctx) error {
	identity, ok := m.Current(c)
	if !ok {
		m.Flash(c, "Please login to continue")
		return c.Redirect("/login", fiber.StatusFound)
	}
	c.Locals(identityLocal, identity)
	return c.Next()
}

// RequireAdmin guards routes that need an authenticated admin. A signed-in
// non-admin is sent to the home page rather than the login form.
func (m *Manager) RequireAdmin(c *fiber.Ctx) error {
	identity, ok := m.Current(c)
	if !ok {
		m.Flash(c, "Please login to continue")
		return c.Redirect("/login", fiber.StatusFound)
	}
	if !identity.IsAdmin {
		m.Flash(c, "You are not authorized to access this page")
		return c.Redirect("/", fiber.StatusFound)
	}
	c.Locals(identityLocal, identity)
	return c.Next()
}

// FromCtx returns the identity a guard stored for this request.
func FromCtx(c *fiber.Ctx) (Identity, error) {
	identity, ok := c.Locals(identityLocal).(Identity)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	return identity, nil
}
