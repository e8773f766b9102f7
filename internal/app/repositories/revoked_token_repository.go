package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/db"
	"github.com/yigit/libraryhub/internal/pkg/dberrors"
)

// TokenRepository tracks access tokens invalidated by logout
type TokenRepository struct {
	db db.Querier
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(q db.Querier) *TokenRepository {
	return &TokenRepository{db: q}
}

// Revoke records the token id. Revoking twice is not an error.
func (r *TokenRepository) Revoke(ctx context.Context, t *models.RevokedToken) error {
	if t.RevokedAt.IsZero() {
		t.RevokedAt = time.Now().UTC()
	}

	sql, args, err := psql.Insert("revoked_tokens").
		Columns("token_id", "user_email", "expires_at", "revoked_at").
		Values(t.TokenID, t.UserEmail, t.ExpiresAt, t.RevokedAt).
		ToSql()
	if err != nil {
		return buildError(err, "revoke token")
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "revoked_tokens_pkey") {
			return nil
		}
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsRevoked checks whether the token id was revoked
func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	sub, args, err := psql.Select("1").From("revoked_tokens").
		Where(squirrel.Eq{"token_id": tokenID}).
		ToSql()
	if err != nil {
		return false, buildError(err, "token revoked")
	}

	var revoked bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&revoked); err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}
	return revoked, nil
}

// DeleteExpired removes revocations of tokens that expired before the cutoff
func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	sql, args, err := psql.Delete("revoked_tokens").
		Where(squirrel.Lt{"expires_at": before}).
		ToSql()
	if err != nil {
		return 0, buildError(err, "delete expired tokens")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
