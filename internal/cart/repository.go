package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("cart item not found")
	ErrQuantityRange = errors.New("quantity must be between 1 and 5")
	ErrQuantityLimit = errors.New("combined quantity exceeds the cart limit")
	ErrForbidden     = errors.New("cart item belongs to another user")
)

type Repository interface {
	Get(id int) (Item, error)
	GetByUserAndBook(userID, bookID int) (Item, error)
	ListByUser(userID int) ([]Line, error)
	Create(item Item) (Item, error)
	UpdateQuantity(id, quantity int) error
	Delete(id int) error
}

// BookInfo carries the book fields the in-memory repository needs to
// build display lines.
type BookInfo struct {
	Name  string
	Price float64
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []Item
	books  map[int]BookInfo
	nextID int
}

func NewInMemoryRepository(books map[int]BookInfo) *InMemoryRepository {
	if books == nil {
		books = make(map[int]BookInfo)
	}
	return &InMemoryRepository{books: books, nextID: 1}
}

func (r *InMemoryRepository) Get(id int) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUserAndBook(userID, bookID int) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.UserID == userID && it.BookID == bookID {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Line, 0)
	for _, it := range r.items {
		if it.UserID != userID {
			continue
		}
		info := r.books[it.BookID]
		out = append(out, Line{
			Item:      it,
			BookName:  info.Name,
			UnitPrice: info.Price,
			LineTotal: info.Price * float64(it.Quantity),
		})
	}
	return out, nil
}

func (r *InMemoryRepository) Create(item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryRepository) UpdateQuantity(id, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
