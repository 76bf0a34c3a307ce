package book

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound        = errors.New("book not found")
	ErrSectionNotFound = errors.New("section does not exist")
	ErrInvalidPrice    = errors.New("price must be positive")
)

type Repository interface {
	Get(id int) (Book, error)
	ListBySection(sectionID int) ([]Book, error)
	// Browse filters the catalog by name substring and maximum price.
	// An empty name matches everything; maxPrice <= 0 disables the bound.
	Browse(name string, maxPrice float64) ([]Book, error)
	Create(b Book) (Book, error)
	Update(id int, b Book) (Book, error)
	// Delete removes the book and any cart and order rows referencing it.
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	books  []Book
	nextID int
}

func NewInMemoryRepository(seed []Book) *InMemoryRepository {
	repo := &InMemoryRepository{books: make([]Book, 0, len(seed))}

	maxID := 0
	for _, b := range seed {
		repo.books = append(repo.books, b)
		if b.ID > maxID {
			maxID = b.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) Get(id int) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *InMemoryRepository) ListBySection(sectionID int) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0)
	for _, b := range r.books {
		if b.SectionID == sectionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Browse(name string, maxPrice float64) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0)
	for _, b := range r.books {
		if name != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(name)) {
			continue
		}
		if maxPrice > 0 && b.Price > maxPrice {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *InMemoryRepository) Create(b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == 0 {
		b.ID = r.nextID
		r.nextID++
	}
	r.books = append(r.books, b)
	return b, nil
}

func (r *InMemoryRepository) Update(id int, update Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.books {
		if b.ID == id {
			b.Name = update.Name
			b.Content = update.Content
			b.Author = update.Author
			b.Price = update.Price
			r.books[i] = b
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
