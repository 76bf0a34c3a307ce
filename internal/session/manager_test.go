package session

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestFlashSurvivesRedirect(t *testing.T) {
	store := NewInMemoryStore()
	manager := NewManager(store)
	app := fiber.New()

	app.Get("/set", func(c *fiber.Ctx) error {
		manager.Flash(c, "hello")
		return c.Redirect("/read", fiber.StatusFound)
	})
	app.Get("/read", func(c *fiber.Ctx) error {
		return c.SendString(manager.PopFlash(c))
	})

	res, _ := app.Test(httptest.NewRequest("GET", "/set", nil))
	var flashID string
	for _, ck := range res.Cookies() {
		if ck.Name == "flash_id" {
			flashID = ck.Value
		}
	}
	if flashID == "" {
		t.Fatalf("expected a flash cookie")
	}

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Cookie", "flash_id="+flashID)
	res, _ = app.Test(req)
	body := make([]byte, 64)
	n, _ := res.Body.Read(body)
	if got := string(body[:n]); got != "hello" {
		t.Fatalf("expected flash %q, got %q", "hello", got)
	}

	// a flash reads exactly once
	req = httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Cookie", "flash_id="+flashID)
	res, _ = app.Test(req)
	n, _ = res.Body.Read(body)
	if n != 0 {
		t.Fatalf("expected empty flash on second read, got %q", string(body[:n]))
	}
}

func TestRequireUserPassesIdentity(t *testing.T) {
	store := NewInMemoryStore()
	manager := NewManager(store)
	app := fiber.New()

	app.Get("/me", manager.RequireUser, func(c *fiber.Ctx) error {
		identity, err := FromCtx(c)
		if err != nil {
			return err
		}
		return c.JSON(identity)
	})

	sid, err := store.Create(Identity{UserID: 42})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "session_id="+sid)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	// a stale session id falls back to the login redirect
	if err := store.Delete(sid); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "session_id="+sid)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
}
