package service

import (
	"errors"

	"gorm.io/gorm"

	pkgerrors "go-inventory-qr/pkg/errors"
)

// lookupError maps a repository lookup failure to NOT_FOUND or INTERNAL_ERROR.
func lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database lookup failed")
}

// writeError maps a repository write failure, turning uniqueness violations
// into CONFLICT.
func writeError(err error, conflictMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.New(pkgerrors.CodeConflict, conflictMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database write failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
