package checkout

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNotFound    = errors.New("transaction not found")
	ErrForbidden   = errors.New("transaction belongs to another user")
	ErrAlreadyPaid = errors.New("transaction already has a payment")
)

type Repository interface {
	// CheckoutCart drains the user's cart rows into a new transaction with
	// one order per row, snapshotting each book's current price. The drain
	// and the inserts are a single atomic unit.
	CheckoutCart(userID int, now time.Time) (Transaction, error)
	GetTransaction(id int) (Transaction, error)
	// ListTransactions returns the user's transactions newest first, with
	// orders attached and the Paid flag resolved.
	ListTransactions(userID int) ([]Transaction, error)
	// CreatePayment inserts the payment after verifying no payment exists
	// for the transaction yet; the check and the insert are atomic.
	CreatePayment(p Payment) (Payment, error)
}

// CartLine seeds the in-memory repository with the cart state a checkout
// would read.
type CartLine struct {
	BookID   int
	BookName string
	Quantity int
	Price    float64
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu           sync.Mutex
	carts        map[int][]CartLine
	transactions []Transaction
	payments     []Payment
	nextTxID     int
	nextOrderID  int
	nextPayID    int
}

func NewInMemoryRepository(carts map[int][]CartLine) *InMemoryRepository {
	if carts == nil {
		carts = make(map[int][]CartLine)
	}
	return &InMemoryRepository{carts: carts, nextTxID: 1, nextOrderID: 1, nextPayID: 1}
}

func (r *InMemoryRepository) CheckoutCart(userID int, now time.Time) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[userID]
	if len(lines) == 0 {
		return Transaction{}, ErrEmptyCart
	}

	t := Transaction{ID: r.nextTxID, UserID: userID, CreatedAt: now}
	r.nextTxID++
	for _, l := range lines {
		t.Orders = append(t.Orders, Order{
			ID:            r.nextOrderID,
			TransactionID: t.ID,
			BookID:        l.BookID,
			BookName:      l.BookName,
			Quantity:      l.Quantity,
			Price:         l.Price,
		})
		r.nextOrderID++
	}

	delete(r.carts, userID)
	r.transactions = append(r.transactions, t)
	return t, nil
}

func (r *InMemoryRepository) GetTransaction(id int) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.transactions {
		if t.ID == id {
			t.Paid = r.hasPayment(id)
			return t, nil
		}
	}
	return Transaction{}, ErrNotFound
}

func (r *InMemoryRepository) ListTransactions(userID int) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Transaction, 0)
	for _, t := range r.transactions {
		if t.UserID == userID {
			t.Paid = r.hasPayment(t.ID)
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) CreatePayment(p Payment) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for _, t := range r.transactions {
		if t.ID == p.TransactionID {
			found = true
			break
		}
	}
	if !found {
		return Payment{}, ErrNotFound
	}
	if r.hasPayment(p.TransactionID) {
		return Payment{}, ErrAlreadyPaid
	}

	p.ID = r.nextPayID
	r.nextPayID++
	r.payments = append(r.payments, p)
	return p, nil
}

func (r *InMemoryRepository) hasPayment(transactionID int) bool {
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			return true
		}
	}
	return false
}
