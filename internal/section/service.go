package section

import "time"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Section, error) {
	return s.repo.List()
}

func (s *Service) ListWithCounts() ([]Summary, error) {
	return s.repo.ListWithCounts()
}

func (s *Service) Get(id int) (Section, error) {
	return s.repo.Get(id)
}

func (s *Service) Create(name, description string, now time.Time) (Section, error) {
	if _, err := s.repo.GetByName(name); err == nil {
		return Section{}, ErrNameExists
	} else if err != ErrNotFound {
		return Section{}, err
	}

	return s.repo.Create(Section{
		Name:        name,
		DateCreated: now.Format("2006-01-02"),
		Description: description,
	})
}

func (s *Service) Update(id int, name, dateCreated, description string) (Section, error) {
	existing, err := s.repo.Get(id)
	if err != nil {
		return Section{}, err
	}

	if name != existing.Name {
		if _, err := s.repo.GetByName(name); err == nil {
			return Section{}, ErrNameExists
		} else if err != ErrNotFound {
			return Section{}, err
		}
	}

	return s.repo.Update(id, Section{
		Name:        name,
		DateCreated: dateCreated,
		Description: description,
	})
}

func (s *Service) Delete(id int) error {
	return s.repo.DeleteCascade(id)
}
