package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a reference to an entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientInventory marks a stock or quantity constraint violation.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	ErrNoBlockSelected = fmt.Errorf("%w: must select a used or new block", ErrValidation)
	ErrNoNewBlocks     = fmt.Errorf("%w: no new blocks available", ErrInsufficientInventory)
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

// lookupErr converts gorm's missing-record error into ErrNotFound.
func lookupErr(err error, entity string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}
