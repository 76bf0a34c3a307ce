package book

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectBook = `SELECT id, name, content, author, price, section_id FROM books`

func (r *PostgresRepository) Get(id int) (Book, error) {
	var b Book
	err := r.db.QueryRow(selectBook+` WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Content, &b.Author, &b.Price, &b.SectionID)
	if err == sql.ErrNoRows {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepository) ListBySection(sectionID int) ([]Book, error) {
	rows, err := r.db.Query(selectBook+` WHERE section_id = $1 ORDER BY id`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *PostgresRepository) Browse(name string, maxPrice float64) ([]Book, error) {
	rows, err := r.db.Query(selectBook+`
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
          AND ($2 <= 0 OR price <= $2)
        ORDER BY id`, name, maxPrice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *PostgresRepository) Create(b Book) (Book, error) {
	err := r.db.QueryRow(`INSERT INTO books (name, content, author, price, section_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		b.Name, b.Content, b.Author, b.Price, b.SectionID).Scan(&b.ID)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Update(id int, b Book) (Book, error) {
	res, err := r.db.Exec(`UPDATE books SET name = $1, content = $2, author = $3, price = $4 WHERE id = $5`,
		b.Name, b.Content, b.Author, b.Price, id)
	if err != nil {
		return Book{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Book{}, ErrNotFound
	}
	b.ID = id
	return b, nil
}

// Delete removes the book plus its cart and order rows in one transaction,
// mirroring the explicit cascade used for sections.
func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM carts WHERE book_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM orders WHERE book_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func scanBooks(rows *sql.Rows) ([]Book, error) {
	out := make([]Book, 0)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Content, &b.Author, &b.Price, &b.SectionID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
