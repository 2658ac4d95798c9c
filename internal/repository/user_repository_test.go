package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	foreign := fmt.Errorf("insert message: %w", &pgconn.PgError{Code: "23503"})

	if !isUniqueViolation(unique) || isForeignKeyViolation(unique) {
		t.Fatal("23505 must classify as unique violation only")
	}
	if !isForeignKeyViolation(foreign) || isUniqueViolation(foreign) {
		t.Fatal("wrapped 23503 must classify as foreign key violation only")
	}
	if isUniqueViolation(errors.New("boom")) || isForeignKeyViolation(nil) {
		t.Fatal("non-postgres errors must not classify")
	}
}
