package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/pkg/apperror"
)

// mapNotFound converts a gorm record miss into the application-level
// not-found sentinel so handlers answer 404 instead of 500.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
