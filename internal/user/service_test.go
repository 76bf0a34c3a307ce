package user

import "testing"

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	if _, err := service.Register("alice", "secret", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register("alice", "other", "Imposter"); err != ErrUsernameExists {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	u, err := repo.GetByUsername("alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Name != "Alice" {
		t.Fatalf("original account changed: %+v", u)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(repo.users))
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	u, err := service.Register("bob", "hunter2", "Bob")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.PassHash == "hunter2" || u.PassHash == "" {
		t.Fatalf("password stored in clear: %q", u.PassHash)
	}
}

func TestAuthenticate(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	if _, err := service.Register("bob", "hunter2", "Bob"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Authenticate("bob", "hunter2"); err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
	if _, err := service.Authenticate("bob", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate("nobody", "hunter2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	if err := service.EnsureAdmin(); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	admin, err := repo.GetByUsername("librarian")
	if err != nil {
		t.Fatalf("librarian not seeded: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatalf("seeded librarian is not admin")
	}
	if _, err := service.Authenticate("librarian", "admin"); err != nil {
		t.Fatalf("default credentials rejected: %v", err)
	}

	// a second call must not create another admin
	if err := service.EnsureAdmin(); err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 user after reseed, got %d", len(repo.users))
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)
	created, err := service.Register("carol", "pw1", "Carol")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register("dave", "pw2", "Dave"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.UpdateProfile(created.ID, "carol", "wrong", "pw3", "Carol"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.UpdateProfile(created.ID, "dave", "pw1", "pw3", "Carol"); err != ErrUsernameExists {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	if _, err := service.UpdateProfile(created.ID, "carol2", "pw1", "pw3", "Caroline"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := service.Authenticate("carol2", "pw3"); err != nil {
		t.Fatalf("new credentials rejected: %v", err)
	}
}
