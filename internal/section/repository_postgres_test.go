package section

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDeleteCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// cart and order rows under the section's books go first, then the
	// books, then the section itself
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM carts").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM orders").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM books").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM sections").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteCascade(3); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteCascade_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM carts").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM orders").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM books").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM sections").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.DeleteCascade(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
