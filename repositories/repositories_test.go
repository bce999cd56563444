package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bloodlink-registry/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(fmt.Errorf("query: %w", gorm.ErrRecordNotFound)), ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uq_hospitals_hrn"}
	var conflict *apperrors.ConflictError
	require.True(t, errors.As(translateError(fmt.Errorf("insert: %w", unique)), &conflict))
	assert.Equal(t, apperrors.FieldErrors{"hrn": MsgHRNTaken}, conflict.Fields)

	unknown := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_index"}
	require.True(t, errors.As(translateError(unknown), &conflict))
	assert.Contains(t, conflict.Fields, "record")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "fk_profiles_user"}
	assert.ErrorIs(t, translateError(fk), ErrMissingOwner)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other))
}

func TestEveryUniqueIndexIsMapped(t *testing.T) {
	for _, name := range []string{
		"uq_users_username", "uq_users_email", "uq_users_phone", "uq_profiles_user_id",
		"uq_hospitals_name", "uq_hospitals_hrn", "uq_hospitals_phone", "uq_hospitals_email",
	} {
		assert.Contains(t, uniqueConstraints, name)
	}
}
