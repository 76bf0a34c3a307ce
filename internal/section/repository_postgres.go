package section

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Section, error) {
	rows, err := r.db.Query(`SELECT id, name, date_created, description FROM sections ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Section, 0)
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.Name, &s.DateCreated, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListWithCounts() ([]Summary, error) {
	rows, err := r.db.Query(`
        SELECT s.id, s.name, s.date_created, s.description, COUNT(b.id)
        FROM sections s
        LEFT JOIN books b ON b.section_id = s.id
        GROUP BY s.id
        ORDER BY s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.DateCreated, &s.Description, &s.BookCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(id int) (Section, error) {
	var s Section
	err := r.db.QueryRow(`SELECT id, name, date_created, description FROM sections WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.DateCreated, &s.Description)
	if err == sql.ErrNoRows {
		return Section{}, ErrNotFound
	}
	if err != nil {
		return Section{}, err
	}
	return s, nil
}

func (r *PostgresRepository) GetByName(name string) (Section, error) {
	var s Section
	err := r.db.QueryRow(`SELECT id, name, date_created, description FROM sections WHERE name = $1`, name).
		Scan(&s.ID, &s.Name, &s.DateCreated, &s.Description)
	if err == sql.ErrNoRows {
		return Section{}, ErrNotFound
	}
	if err != nil {
		return Section{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Create(s Section) (Section, error) {
	err := r.db.QueryRow(`INSERT INTO sections (name, date_created, description) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.DateCreated, s.Description).Scan(&s.ID)
	if err != nil {
		return Section{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(id int, s Section) (Section, error) {
	res, err := r.db.Exec(`UPDATE sections SET name = $1, date_created = $2, description = $3 WHERE id = $4`,
		s.Name, s.DateCreated, s.Description, id)
	if err != nil {
		return Section{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Section{}, ErrNotFound
	}
	s.ID = id
	return s, nil
}

// DeleteCascade removes the section, its books, and every cart and order
// row pointing at those books, in one transaction. The cascade is spelled
// out here rather than left to schema annotations so its scope stays
// visible and testable.
func (r *PostgresRepository) DeleteCascade(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM carts WHERE book_id IN (SELECT id FROM books WHERE section_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM orders WHERE book_id IN (SELECT id FROM books WHERE section_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM books WHERE section_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
