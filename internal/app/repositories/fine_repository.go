package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/db"
)

// FineRepository handles database operations for fines
type FineRepository struct {
	db db.Querier
}

// NewFineRepository creates a new fine repository
func NewFineRepository(q db.Querier) *FineRepository {
	return &FineRepository{db: q}
}

// Create records the fine for a returned loan
func (r *FineRepository) Create(ctx context.Context, f *models.Fine) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	sql, args, err := psql.Insert("fines").
		Columns("id", "amount", "date", "issued_book_id").
		Values(f.ID, f.Amount, f.Date, f.IssuedBookID).
		ToSql()
	if err != nil {
		return buildError(err, "create fine")
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapWriteError(err, "fine")
	}
	return nil
}

// GetByLoan returns the fine charged on a loan
func (r *FineRepository) GetByLoan(ctx context.Context, loanID uuid.UUID) (*models.Fine, error) {
	sql, args, err := psql.Select("id", "amount", "date", "issued_book_id").
		From("fines").
		Where(squirrel.Eq{"issued_book_id": loanID}).
		ToSql()
	if err != nil {
		return nil, buildError(err, "get fine")
	}

	var f models.Fine
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&f.ID, &f.Amount, &f.Date, &f.IssuedBookID); err != nil {
		return nil, notFound(err, "fine")
	}
	return &f, nil
}
