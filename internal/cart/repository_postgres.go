package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(id int) (Item, error) {
	var it Item
	err := r.db.QueryRow(`SELECT id, user_id, book_id, quantity FROM carts WHERE id = $1`, id).
		Scan(&it.ID, &it.UserID, &it.BookID, &it.Quantity)
	if err == sql.ErrNoRows {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepository) GetByUserAndBook(userID, bookID int) (Item, error) {
	var it Item
	err := r.db.QueryRow(`SELECT id, user_id, book_id, quantity FROM carts WHERE user_id = $1 AND book_id = $2`, userID, bookID).
		Scan(&it.ID, &it.UserID, &it.BookID, &it.Quantity)
	if err == sql.ErrNoRows {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Line, error) {
	rows, err := r.db.Query(`
        SELECT c.id, c.user_id, c.book_id, c.quantity, b.name, b.price
        FROM carts c
        JOIN books b ON b.id = c.book_id
        WHERE c.user_id = $1
        ORDER BY c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.Quantity, &l.BookName, &l.UnitPrice); err != nil {
			return nil, err
		}
		l.LineTotal = l.UnitPrice * float64(l.Quantity)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(item Item) (Item, error) {
	err := r.db.QueryRow(`INSERT INTO carts (user_id, book_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
		item.UserID, item.BookID, item.Quantity).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) UpdateQuantity(id, quantity int) error {
	res, err := r.db.Exec(`UPDATE carts SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
