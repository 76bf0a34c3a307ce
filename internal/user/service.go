package user

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates a regular (non-admin) account. The duplicate check runs
// before the write so the caller gets ErrUsernameExists instead of a raw
// constraint violation.
func (s *Service) Register(username, password, name string) (User, error) {
	if _, err := s.repo.GetByUsername(username); err == nil {
		return User{}, ErrUsernameExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(User{
		Username: username,
		PassHash: string(hashed),
		Name:     name,
	})
}

// Authenticate returns ErrNotFound for an unknown username and
// ErrInvalidCredentials for a wrong password; the handler surfaces the two
// cases with different messages.
func (s *Service) Authenticate(username, password string) (User, error) {
	u, err := s.repo.GetByUsername(username)
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile changes username, display name and password in one shot.
// The current password must verify, and a changed username must still be
// unique.
func (s *Service) UpdateProfile(id int, username, currentPassword, newPassword, name string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(currentPassword)) != nil {
		return User{}, ErrInvalidCredentials
	}

	if username != u.Username {
		if _, err := s.repo.GetByUsername(username); err == nil {
			return User{}, ErrUsernameExists
		} else if err != ErrNotFound {
			return User{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u.Username = username
	u.Name = name
	u.PassHash = string(hashed)
	return s.repo.Update(id, u)
}

// EnsureAdmin seeds the default librarian account on first startup when no
// admin exists yet.
func (s *Service) EnsureAdmin() error {
	exists, err := s.repo.AdminExists()
	if err != nil || exists {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(User{
		Username: "librarian",
		PassHash: string(hashed),
		Name:     "Librarian",
		IsAdmin:  true,
	})
	return err
}
