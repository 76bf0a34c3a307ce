package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, username, passhash, name, is_admin FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PassHash, &u.Name, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByUsername(username string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, username, passhash, name, is_admin FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PassHash, &u.Name, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (username, passhash, name, is_admin) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Username, u.PassHash, u.Name, u.IsAdmin).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	res, err := r.db.Exec(`UPDATE users SET username = $1, passhash = $2, name = $3 WHERE id = $4`,
		u.Username, u.PassHash, u.Name, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	u.ID = id
	return u, nil
}

func (r *PostgresRepository) AdminExists() (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE is_admin)`).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
