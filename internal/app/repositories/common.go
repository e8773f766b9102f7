package repositories

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/dberrors"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// notFound maps pgx.ErrNoRows to apperrors.ErrResourceNotFound
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrResourceNotFound)
	}
	return fmt.Errorf("error retrieving %s: %w", what, err)
}

// mapWriteError classifies constraint violations raised by INSERT/UPDATE.
// A foreign key violation here means the referenced row does not exist.
func mapWriteError(err error, what string) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return fmt.Errorf("%s (%s): %w", what, dberrors.ConstraintName(err), apperrors.ErrResourceAlreadyExists)
	case dberrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%s (%s): %w", what, dberrors.ConstraintName(err), apperrors.ErrResourceNotFound)
	case dberrors.IsCheckViolation(err):
		return fmt.Errorf("%s (%s): %w", what, dberrors.ConstraintName(err), apperrors.ErrValidationFailed)
	default:
		return fmt.Errorf("error writing %s: %w", what, err)
	}
}

// mapDeleteError classifies errors raised by DELETE; a foreign key violation
// means other rows still reference the target.
func mapDeleteError(err error, what string) error {
	if dberrors.IsForeignKeyViolation(err) {
		return fmt.Errorf("%s (%s): %w", what, dberrors.ConstraintName(err), apperrors.ErrResourceInUse)
	}
	return fmt.Errorf("error deleting %s: %w", what, err)
}

func buildError(err error, what string) error {
	return fmt.Errorf("failed to build %s query: %w", what, err)
}
