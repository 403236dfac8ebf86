package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation_Postgres(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_no_double_booking"}

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "idx_no_double_booking"))
	assert.False(t, IsUniqueViolation(err, "idx_schedule_day_unique"))
}

func TestIsUniqueViolation_PostgresWrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_no_double_booking"}
	err := fmt.Errorf("create appointment: %w", pgErr)

	assert.True(t, IsUniqueViolation(err, "idx_no_double_booking"))
}

func TestIsUniqueViolation_PostgresOtherCode(t *testing.T) {
	err := &pgconn.PgError{Code: "23503"} // foreign key violation

	assert.False(t, IsUniqueViolation(err, ""))
}

func TestIsUniqueViolation_SQLiteMessage(t *testing.T) {
	err := errors.New("constraint failed: UNIQUE constraint failed: appointments.date, appointments.time (2067)")

	assert.True(t, IsUniqueViolation(err, "idx_no_double_booking"))
}

func TestIsUniqueViolation_UnrelatedError(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
}
