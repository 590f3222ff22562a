package database

import (
	"errors"
	"yatube/internal/core/apperr"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the shared taxonomy.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
