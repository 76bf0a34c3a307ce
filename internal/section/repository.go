package section

import (
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("section not found")
	ErrNameExists = errors.New("section name already exists")
)

type Repository interface {
	List() ([]Section, error)
	ListWithCounts() ([]Summary, error)
	Get(id int) (Section, error)
	GetByName(name string) (Section, error)
	Create(s Section) (Section, error)
	Update(id int, s Section) (Section, error)
	// DeleteCascade removes the section together with its books and any
	// cart and order rows referencing those books.
	DeleteCascade(id int) error
}

// InMemoryRepository is used for tests and local scenarios. It holds no
// book rows, so DeleteCascade only removes the section itself.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sections []Section
	nextID   int
}

func NewInMemoryRepository(seed []Section) *InMemoryRepository {
	repo := &InMemoryRepository{sections: make([]Section, 0, len(seed))}

	maxID := 0
	for _, s := range seed {
		repo.sections = append(repo.sections, s)
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List() ([]Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out, nil
}

func (r *InMemoryRepository) ListWithCounts() ([]Summary, error) {
	sections, _ := r.List()
	out := make([]Summary, 0, len(sections))
	for _, s := range sections {
		out = append(out, Summary{Section: s})
	}
	return out, nil
}

func (r *InMemoryRepository) Get(id int) (Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sections {
		if s.ID == id {
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sections {
		if s.Name == name {
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}

func (r *InMemoryRepository) Create(s Section) (Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.sections = append(r.sections, s)
	return s, nil
}

func (r *InMemoryRepository) Update(id int, update Section) (Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sections {
		if s.ID == id {
			s.Name = update.Name
			s.DateCreated = update.DateCreated
			s.Description = update.Description
			r.sections[i] = s
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}

func (r *InMemoryRepository) DeleteCascade(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sections {
		if s.ID == id {
			r.sections = append(r.sections[:i], r.sections[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
