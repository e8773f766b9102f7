package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/db"
)

// LendingTx is the set of reads and writes a lending operation performs
// inside a single transaction.
type LendingTx interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	LockBookByTitle(ctx context.Context, title string, foldCase bool) (*models.Book, error)
	HasOpenLoan(ctx context.Context, studentID, bookID uuid.UUID) (bool, error)
	AdjustBookQuantity(ctx context.Context, bookID uuid.UUID, delta int) error
	CreateLoan(ctx context.Context, loan *models.IssuedBook) error
	LatestLoan(ctx context.Context, studentID, bookID uuid.UUID) (*models.IssuedBook, error)
	MarkReturned(ctx context.Context, loanID uuid.UUID, at time.Time) error
	CreateFine(ctx context.Context, fine *models.Fine) error
	FineForLoan(ctx context.Context, loanID uuid.UUID) (*models.Fine, error)
}

// LendingRepository runs lending operations against users, books, loans and fines
type LendingRepository struct {
	pool db.Pool
}

// NewLendingRepository creates a new lending repository
func NewLendingRepository(pool db.Pool) *LendingRepository {
	return &LendingRepository{pool: pool}
}

// InTx runs fn in a transaction; fn's error rolls everything back.
func (r *LendingRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx LendingTx) error) error {
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newLendingTx(tx))
	})
}

// ListLoans returns every loan, newest first
func (r *LendingRepository) ListLoans(ctx context.Context) ([]*models.IssuedBook, error) {
	return NewIssuedBookRepository(r.pool).List(ctx)
}

type lendingTx struct {
	users *UserRepository
	books *BookRepository
	loans *IssuedBookRepository
	fines *FineRepository
}

func newLendingTx(q db.Querier) *lendingTx {
	return &lendingTx{
		users: NewUserRepository(q),
		books: NewBookRepository(q),
		loans: NewIssuedBookRepository(q),
		fines: NewFineRepository(q),
	}
}

func (t *lendingTx) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return t.users.GetByID(ctx, id)
}

func (t *lendingTx) LockBookByTitle(ctx context.Context, title string, foldCase bool) (*models.Book, error) {
	return t.books.LockBookByTitle(ctx, title, foldCase)
}

func (t *lendingTx) HasOpenLoan(ctx context.Context, studentID, bookID uuid.UUID) (bool, error) {
	return t.loans.HasOpen(ctx, studentID, bookID)
}

func (t *lendingTx) AdjustBookQuantity(ctx context.Context, bookID uuid.UUID, delta int) error {
	return t.books.AdjustQuantity(ctx, bookID, delta)
}

func (t *lendingTx) CreateLoan(ctx context.Context, loan *models.IssuedBook) error {
	return t.loans.Create(ctx, loan)
}

func (t *lendingTx) LatestLoan(ctx context.Context, studentID, bookID uuid.UUID) (*models.IssuedBook, error) {
	return t.loans.Latest(ctx, studentID, bookID)
}

func (t *lendingTx) MarkReturned(ctx context.Context, loanID uuid.UUID, at time.Time) error {
	return t.loans.MarkReturned(ctx, loanID, at)
}

func (t *lendingTx) CreateFine(ctx context.Context, fine *models.Fine) error {
	return t.fines.Create(ctx, fine)
}

func (t *lendingTx) FineForLoan(ctx context.Context, loanID uuid.UUID) (*models.Fine, error) {
	return t.fines.GetByLoan(ctx, loanID)
}
