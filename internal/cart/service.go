package cart

import "github.com/warin29/library-store-backend/internal/book"

// maxQuantity bounds how many copies of a single book one cart may hold.
const maxQuantity = 5

type Service struct {
	repo  Repository
	books *book.Service
}

func NewService(repo Repository, books *book.Service) *Service {
	return &Service{repo: repo, books: books}
}

// Add puts quantity copies of a book into the user's cart. An existing row
// for the same book is merged; if the combined quantity would exceed the
// limit the cart is left unchanged.
func (s *Service) Add(userID, bookID, quantity int) error {
	if quantity < 1 || quantity > maxQuantity {
		return ErrQuantityRange
	}
	if _, err := s.books.Get(bookID); err != nil {
		return book.ErrNotFound
	}

	existing, err := s.repo.GetByUserAndBook(userID, bookID)
	if err == ErrNotFound {
		_, err := s.repo.Create(Item{UserID: userID, BookID: bookID, Quantity: quantity})
		return err
	}
	if err != nil {
		return err
	}

	combined := existing.Quantity + quantity
	if combined > maxQuantity {
		return ErrQuantityLimit
	}
	return s.repo.UpdateQuantity(existing.ID, combined)
}

// List returns the user's cart lines plus the running total.
func (s *Service) List(userID int) ([]Line, float64, error) {
	lines, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}
	return lines, total, nil
}

// Remove deletes a single cart row after checking the caller owns it.
func (s *Service) Remove(userID, cartID int) error {
	item, err := s.repo.Get(cartID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(cartID)
}
