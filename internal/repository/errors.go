package repository

import (
	"errors"
	"fmt"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
	"gorm.io/gorm"
)

// storageError classifies backend failures as ErrStorageUnavailable so
// callers never mistake them for an empty result. Other errors, such as
// the sentinels returned from inside an update, pass through unchanged.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrStorageUnavailable) {
		return err
	}
	if errors.Is(err, kvstore.ErrUnavailable) || errors.Is(err, gorm.ErrInvalidDB) {
		return fmt.Errorf("%w: %s: %v", models.ErrStorageUnavailable, op, err)
	}
	return err
}

// dbError maps gorm errors onto the model taxonomy.
func dbError(op string, err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	default:
		return fmt.Errorf("%w: %s: %v", models.ErrStorageUnavailable, op, err)
	}
}
