package checkout

import (
	"math"
	"time"
)

// taxRate is the flat tax applied on top of the order subtotal.
const taxRate = 0.18

// StatusSuccess is the only payment status the system produces; there is
// no external gateway and no failure path.
const StatusSuccess = "success"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Checkout converts the user's cart into a transaction with one
// price-snapshotted order per cart row.
func (s *Service) Checkout(userID int, now time.Time) (Transaction, error) {
	return s.repo.CheckoutCart(userID, now)
}

// Pay settles a transaction: subtotal from the stored order lines, plus
// the flat tax, rounded to cents. Only the transaction's owner may pay,
// and only once.
func (s *Service) Pay(userID, transactionID int, now time.Time) (Payment, error) {
	t, err := s.repo.GetTransaction(transactionID)
	if err != nil {
		return Payment{}, err
	}
	if t.UserID != userID {
		return Payment{}, ErrForbidden
	}

	return s.repo.CreatePayment(Payment{
		UserID:        userID,
		TransactionID: transactionID,
		AmountPayable: AmountPayable(subtotal(t.Orders)),
		Status:        StatusSuccess,
		CreatedAt:     now,
	})
}

// History lists the user's transactions newest first.
func (s *Service) History(userID int) ([]Transaction, error) {
	return s.repo.ListTransactions(userID)
}

// PendingPayments returns the user's unpaid transactions with computed
// amounts, so a checkout that never reached the payment step can still be
// settled later.
func (s *Service) PendingPayments(userID int) ([]PendingPayment, error) {
	transactions, err := s.repo.ListTransactions(userID)
	if err != nil {
		return nil, err
	}

	out := make([]PendingPayment, 0)
	for _, t := range transactions {
		if t.Paid {
			continue
		}
		sub := subtotal(t.Orders)
		out = append(out, PendingPayment{
			Transaction:   t,
			Subtotal:      sub,
			AmountPayable: AmountPayable(sub),
		})
	}
	return out, nil
}

// AmountPayable applies the flat tax to a subtotal and rounds to cents.
func AmountPayable(subtotal float64) float64 {
	return round2(subtotal * (1 + taxRate))
}

func subtotal(orders []Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Price * float64(o.Quantity)
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
