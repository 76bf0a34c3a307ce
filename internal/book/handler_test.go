package book

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/warin29/library-store-backend/internal/section"
	"github.com/warin29/library-store-backend/internal/session"
)

func makeApp(t *testing.T, uploadDir string) (*fiber.App, *session.InMemoryStore) {
	t.Helper()
	sections := section.NewService(section.NewInMemoryRepository([]section.Section{
		{ID: 1, Name: "Fiction"},
	}))
	service := NewService(NewInMemoryRepository(nil), sections)
	store := session.NewInMemoryStore()
	app := fiber.New()
	NewHandler(service, session.NewManager(store), uploadDir).RegisterRoutes(app)
	return app, store
}

func uploadRequest(t *testing.T, sid, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Cookie", "session_id="+sid)
	return req
}

func popFlash(t *testing.T, store *session.InMemoryStore, res *http.Response) string {
	t.Helper()
	for _, ck := range res.Cookies() {
		if ck.Name == "flash_id" {
			msg, err := store.PopFlash(ck.Value)
			if err != nil {
				t.Fatalf("pop flash: %v", err)
			}
			return msg
		}
	}
	return ""
}

func TestUploadSavesPDF(t *testing.T) {
	// the directory does not exist yet, as on a fresh deploy
	dir := filepath.Join(t.TempDir(), "uploads")
	app, store := makeApp(t, dir)
	sid, err := store.Create(session.Identity{UserID: 1, IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	res, _ := app.Test(uploadRequest(t, sid, "My Report.pdf"))
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/admin_dash" {
		t.Fatalf("expected redirect to /admin_dash, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
	if got := popFlash(t, store, res); got != "File uploaded successfully" {
		t.Fatalf("unexpected flash %q", got)
	}

	// spaces become underscores in the stored name
	if _, err := os.Stat(filepath.Join(dir, "My_Report.pdf")); err != nil {
		t.Fatalf("uploaded file not saved: %v", err)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	app, store := makeApp(t, dir)
	sid, err := store.Create(session.Identity{UserID: 1, IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	res, _ := app.Test(uploadRequest(t, sid, "notes.txt"))
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/admin_dash" {
		t.Fatalf("expected redirect to /admin_dash, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
	if got := popFlash(t, store, res); got != "Invalid file type." {
		t.Fatalf("unexpected flash %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload left %d files behind", len(entries))
	}
}

func TestUploadMissingFilePart(t *testing.T) {
	app, store := makeApp(t, t.TempDir())
	sid, err := store.Create(session.Identity{UserID: 1, IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest("POST", "/upload", nil)
	req.Header.Set("Cookie", "session_id="+sid)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/admin_dash" {
		t.Fatalf("expected redirect to /admin_dash, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
	if got := popFlash(t, store, res); got != "No file part" {
		t.Fatalf("unexpected flash %q", got)
	}
}

func TestUploadStripsTraversal(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "uploads")
	app, store := makeApp(t, dir)
	sid, err := store.Create(session.Identity{UserID: 1, IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	res, _ := app.Test(uploadRequest(t, sid, "../../x.pdf"))
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected redirect, got %d", res.StatusCode)
	}

	// the file lands inside the upload directory under its base name
	if _, err := os.Stat(filepath.Join(dir, "x.pdf")); err != nil {
		t.Fatalf("sanitized upload not saved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "x.pdf")); !os.IsNotExist(err) {
		t.Fatalf("upload escaped the upload directory")
	}
}

func TestUploadGuard(t *testing.T) {
	app, store := makeApp(t, t.TempDir())

	// anonymous clients are sent to login
	req := httptest.NewRequest("POST", "/upload", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}

	// a regular member is not allowed to upload
	sid, err := store.Create(session.Identity{UserID: 1})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	req = httptest.NewRequest("POST", "/upload", nil)
	req.Header.Set("Cookie", "session_id="+sid)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusFound || res.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestSecureFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"My Report.pdf", "My_Report.pdf"},
		{"../../x.pdf", "x.pdf"},
		{"a/b/c.pdf", "c.pdf"},
		{"we!rd(name).pdf", "werdname.pdf"},
		// a bare extension loses its leading dot, like werkzeug's
		// secure_filename; the upload is stored as "pdf"
		{".pdf", "pdf"},
		// nothing safe left falls back to a fixed name
		{"...", "file.pdf"},
		{"日本語", "file.pdf"},
	}
	for _, tc := range cases {
		if got := secureFilename(tc.in); got != tc.want {
			t.Fatalf("secureFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
