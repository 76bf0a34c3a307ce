package section

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/warin29/library-store-backend/internal/session"
)

func makeApp(t *testing.T) (*fiber.App, *InMemoryRepository, *session.InMemoryStore) {
	t.Helper()
	repo := NewInMemoryRepository(nil)
	store := session.NewInMemoryStore()
	app := fiber.New()
	NewHandler(NewService(repo), session.NewManager(store)).RegisterRoutes(app)
	return app, repo, store
}

func TestAdminGuard(t *testing.T) {
	app, _, store := makeApp(t)

	// no session redirects to the login page
	req := httptest.NewRequest("GET", "/admin_dash", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}

	// a logged-in member is still not allowed in
	sid, err := store.Create(session.Identity{UserID: 1})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	req = httptest.NewRequest("GET", "/admin_dash", nil)
	req.Header.Set("Cookie", "session_id="+sid)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}

	// an admin session reaches the dashboard
	adminSid, err := store.Create(session.Identity{UserID: 2, IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	req = httptest.NewRequest("GET", "/admin_dash", nil)
	req.Header.Set("Cookie", "session_id="+adminSid)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res.StatusCode)
	}
}

func TestAddSection(t *testing.T) {
	app, repo, store := makeApp(t)
	sid, err := store.Create(session.Identity{UserID: 2, IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	post := func(body string) *http.Response {
		t.Helper()
		req := httptest.NewRequest("POST", "/section/add", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Cookie", "session_id="+sid)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		return res
	}

	// missing fields bounce back to the form
	res := post("name=&description=")
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/section/add" {
		t.Fatalf("expected redirect to /section/add, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}

	// a valid submission lands on the dashboard
	res = post("name=Fiction&description=Novels")
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/admin_dash" {
		t.Fatalf("expected redirect to /admin_dash, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
	if _, err := repo.GetByName("Fiction"); err != nil {
		t.Fatalf("section not created: %v", err)
	}

	// duplicate names are rejected
	res = post("name=Fiction&description=Again")
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/section/add" {
		t.Fatalf("expected redirect to /section/add, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
}
