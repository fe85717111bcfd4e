// Package dberr maps driver and ORM failures onto the errs package.
package dberr

import (
	"errors"

	"tracking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports a duplicate key, whether or not the connection was
// opened with gorm's TranslateError.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Translate turns not-found and duplicate-key failures into typed errors and
// returns anything else unchanged.
func Translate(err error, paramName string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundErrorWithCause(paramName, id, err)
	case IsUniqueViolation(err):
		return errs.NewObjectAlreadyExistsErrorWithCause(paramName, id, err)
	default:
		return err
	}
}
