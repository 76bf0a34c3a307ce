package checkout

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CheckoutCart(userID int, now time.Time) (Transaction, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
        SELECT c.book_id, c.quantity, b.name, b.price
        FROM carts c
        JOIN books b ON b.id = c.book_id
        WHERE c.user_id = $1
        ORDER BY c.id`, userID)
	if err != nil {
		return Transaction{}, err
	}

	var lines []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.BookID, &l.Quantity, &l.BookName, &l.Price); err != nil {
			rows.Close()
			return Transaction{}, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Transaction{}, err
	}
	if len(lines) == 0 {
		return Transaction{}, ErrEmptyCart
	}

	t := Transaction{UserID: userID, CreatedAt: now}
	if err := tx.QueryRow(`INSERT INTO transactions (user_id, created_at) VALUES ($1, $2) RETURNING id`,
		userID, now).Scan(&t.ID); err != nil {
		return Transaction{}, err
	}

	for _, l := range lines {
		ord := Order{
			TransactionID: t.ID,
			BookID:        l.BookID,
			BookName:      l.BookName,
			Quantity:      l.Quantity,
			Price:         l.Price,
		}
		if err := tx.QueryRow(`INSERT INTO orders (transaction_id, book_id, quantity, price) VALUES ($1, $2, $3, $4) RETURNING id`,
			ord.TransactionID, ord.BookID, ord.Quantity, ord.Price).Scan(&ord.ID); err != nil {
			return Transaction{}, err
		}
		t.Orders = append(t.Orders, ord)
	}

	if _, err := tx.Exec(`DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (r *PostgresRepository) GetTransaction(id int) (Transaction, error) {
	var t Transaction
	err := r.db.QueryRow(`
        SELECT t.id, t.user_id, t.created_at, EXISTS (SELECT 1 FROM payments p WHERE p.transaction_id = t.id)
        FROM transactions t
        WHERE t.id = $1`, id).Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.Paid)
	if err == sql.ErrNoRows {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}

	orders, err := r.listOrders([]int{t.ID})
	if err != nil {
		return Transaction{}, err
	}
	t.Orders = orders[t.ID]
	return t, nil
}

func (r *PostgresRepository) ListTransactions(userID int) ([]Transaction, error) {
	rows, err := r.db.Query(`
        SELECT t.id, t.user_id, t.created_at, EXISTS (SELECT 1 FROM payments p WHERE p.transaction_id = t.id)
        FROM transactions t
        WHERE t.user_id = $1
        ORDER BY t.created_at DESC, t.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.Paid); err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders, err := r.listOrders(ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Orders = orders[out[i].ID]
	}
	return out, nil
}

func (r *PostgresRepository) CreatePayment(p Payment) (Payment, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Payment{}, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, p.TransactionID).Scan(&exists)
	if err != nil {
		return Payment{}, err
	}
	if !exists {
		return Payment{}, ErrNotFound
	}

	var paid bool
	err = tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM payments WHERE transaction_id = $1)`, p.TransactionID).Scan(&paid)
	if err != nil {
		return Payment{}, err
	}
	if paid {
		return Payment{}, ErrAlreadyPaid
	}

	err = tx.QueryRow(`INSERT INTO payments (user_id, transaction_id, amount_payable, status, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.UserID, p.TransactionID, p.AmountPayable, p.Status, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// listOrders fetches the orders for a set of transaction ids in one query
// and groups them by transaction.
func (r *PostgresRepository) listOrders(transactionIDs []int) (map[int][]Order, error) {
	out := make(map[int][]Order)
	if len(transactionIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(`
        SELECT o.id, o.transaction_id, o.book_id, b.name, o.quantity, o.price
        FROM orders o
        JOIN books b ON b.id = o.book_id
        WHERE o.transaction_id = ANY($1::int[])
        ORDER BY o.id`, pq.Array(transactionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.TransactionID, &o.BookID, &o.BookName, &o.Quantity, &o.Price); err != nil {
			return nil, err
		}
		out[o.TransactionID] = append(out[o.TransactionID], o)
	}
	return out, rows.Err()
}
