package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsIdempotencyConflict(t *testing.T) {
	conflict := &pgconn.PgError{Code: "23505", ConstraintName: "orders_idempotency_key_key"}
	assert.True(t, isIdempotencyConflict(conflict))
	assert.True(t, isIdempotencyConflict(fmt.Errorf("insert order: %w", conflict)),
		"wrapped unique violations still match")

	otherConstraint := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.False(t, isIdempotencyConflict(otherConstraint))

	otherCode := &pgconn.PgError{Code: "22P02", ConstraintName: "orders_idempotency_key_key"}
	assert.False(t, isIdempotencyConflict(otherCode))

	assert.False(t, isIdempotencyConflict(errors.New("connection reset")))
	assert.False(t, isIdempotencyConflict(nil))
}
