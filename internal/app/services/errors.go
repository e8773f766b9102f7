package services

import (
	"errors"

	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

// storeError turns repository sentinels into user-facing errors about what.
// Errors already carrying a message pass through unchanged.
func storeError(err error, what string) error {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		return err
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return apperrors.NewResourceNotFoundError(what + " not found")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return apperrors.NewConflictError(what + " already exists")
	case errors.Is(err, apperrors.ErrResourceInUse):
		return apperrors.NewConflictError(what + " is still referenced by other records")
	default:
		return err
	}
}
