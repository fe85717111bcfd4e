package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"tracking/internal/adapters/out/postgres/dberr"
	"tracking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "proofs_of_delivery_parcel_id_key"}
	other := errors.New("connection refused")

	assert.NoError(t, dberr.Translate(nil, "parcel", "x"))

	err := dberr.Translate(gorm.ErrRecordNotFound, "parcel", "p-1")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	var notFound *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "p-1", notFound.ID)

	err = dberr.Translate(gorm.ErrDuplicatedKey, "account", "maria")
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	err = dberr.Translate(fmt.Errorf("insert: %w", pgDup), "proof", "p-1")
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	assert.Same(t, other, dberr.Translate(other, "parcel", "p-1"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))
}
