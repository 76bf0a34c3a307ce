package book

import "github.com/warin29/library-store-backend/internal/section"

// Service validates catalog changes before they hit the repository.
type Service struct {
	repo     Repository
	sections *section.Service
}

func NewService(repo Repository, sections *section.Service) *Service {
	return &Service{repo: repo, sections: sections}
}

func (s *Service) Get(id int) (Book, error) {
	return s.repo.Get(id)
}

func (s *Service) ListBySection(sectionID int) ([]Book, error) {
	return s.repo.ListBySection(sectionID)
}

func (s *Service) Browse(name string, maxPrice float64) ([]Book, error) {
	return s.repo.Browse(name, maxPrice)
}

func (s *Service) Create(b Book) (Book, error) {
	if b.Price <= 0 {
		return Book{}, ErrInvalidPrice
	}
	if _, err := s.sections.Get(b.SectionID); err != nil {
		return Book{}, ErrSectionNotFound
	}
	return s.repo.Create(b)
}

func (s *Service) Update(id int, b Book) (Book, error) {
	if b.Price <= 0 {
		return Book{}, ErrInvalidPrice
	}
	return s.repo.Update(id, b)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
