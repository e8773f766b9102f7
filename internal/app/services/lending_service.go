package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	authz "github.com/yigit/libraryhub/internal/app/auth"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/repositories"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/helpers"
)

// LendingStore runs lending operations transactionally
type LendingStore interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx repositories.LendingTx) error) error
	ListLoans(ctx context.Context) ([]*models.IssuedBook, error)
}

// LendingPolicy holds the loan length and the per-day late fee
type LendingPolicy struct {
	LoanPeriod time.Duration
	DailyFine  decimal.Decimal
}

// ReturnResult describes a completed or repeated return
type ReturnResult struct {
	Loan            *models.IssuedBook
	Fine            *models.Fine
	AlreadyReturned bool
	Message         string
}

// LendingService issues and returns books
type LendingService struct {
	store  LendingStore
	policy LendingPolicy
	logger zerolog.Logger
	now    func() time.Time
}

// NewLendingService creates a new LendingService
func NewLendingService(store LendingStore, policy LendingPolicy, logger zerolog.Logger) *LendingService {
	return &LendingService{
		store:  store,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

func canBorrow(caller *models.User) bool {
	return caller != nil && authz.Allows(caller.Role, authz.BorrowBooks)
}

// Issue lends one copy of bookTitle to the calling student
func (s *LendingService) Issue(ctx context.Context, caller *models.User, studentName, bookTitle string) (*models.IssuedBook, error) {
	if !canBorrow(caller) {
		return nil, apperrors.NewForbiddenError("Only students can issue books")
	}
	if studentName != caller.Name {
		return nil, apperrors.NewForbiddenError("Students can only issue books for themselves")
	}

	var loan *models.IssuedBook
	err := s.store.InTx(ctx, func(ctx context.Context, tx repositories.LendingTx) error {
		student, err := tx.GetUserByID(ctx, caller.ID)
		if err != nil {
			return storeError(err, "Student")
		}

		book, err := tx.LockBookByTitle(ctx, bookTitle, false)
		if err != nil {
			return storeError(err, "Book")
		}

		open, err := tx.HasOpenLoan(ctx, student.ID, book.ID)
		if err != nil {
			return fmt.Errorf("error checking open loan: %w", err)
		}
		if open {
			return apperrors.NewConflictError("Book is already issued and not returned")
		}

		if book.Quantity <= 0 {
			return apperrors.NewOutOfStockError("No copies of the book are available to issue")
		}

		if err := tx.AdjustBookQuantity(ctx, book.ID, -1); err != nil {
			if errors.Is(err, apperrors.ErrOutOfStock) {
				return apperrors.NewOutOfStockError("No copies of the book are available to issue")
			}
			return storeError(err, "Book")
		}

		now := s.now().UTC()
		loan = &models.IssuedBook{
			IssueDate:   now,
			DueDate:     now.Add(s.policy.LoanPeriod),
			StudentID:   student.ID,
			BookID:      book.ID,
			StudentName: student.Name,
			BookTitle:   book.Title,
		}
		if err := tx.CreateLoan(ctx, loan); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.NewConflictError("Book is already issued and not returned")
			}
			return storeError(err, "Loan")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("loanID", loan.ID.String()).
		Str("studentID", loan.StudentID.String()).
		Str("bookID", loan.BookID.String()).
		Time("dueDate", loan.DueDate).
		Msg("Book issued")
	return loan, nil
}

// Return closes the calling student's latest loan of bookTitle and assesses any late fine.
// Returning an already returned loan succeeds without side effects and reports
// the fine charged the first time, if any.
func (s *LendingService) Return(ctx context.Context, caller *models.User, bookTitle string) (*ReturnResult, error) {
	if !canBorrow(caller) {
		return nil, apperrors.NewForbiddenError("Only students can return books")
	}

	var result *ReturnResult
	err := s.store.InTx(ctx, func(ctx context.Context, tx repositories.LendingTx) error {
		book, err := tx.LockBookByTitle(ctx, bookTitle, true)
		if err != nil {
			return storeError(err, "Book")
		}

		loan, err := tx.LatestLoan(ctx, caller.ID, book.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return apperrors.NewResourceNotFoundError("No loan of this book found for the student")
			}
			return err
		}

		if loan.IsReturned {
			fine, err := tx.FineForLoan(ctx, loan.ID)
			if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
				return storeError(err, "Fine")
			}
			result = &ReturnResult{
				Loan:            loan,
				Fine:            fine,
				AlreadyReturned: true,
				Message: fmt.Sprintf("'%s' was already returned on %s.",
					book.Title, loan.ReturnDate.UTC().Format("2006-01-02 15:04:05")),
			}
			return nil
		}

		now := s.now().UTC()
		if err := tx.MarkReturned(ctx, loan.ID, now); err != nil {
			return storeError(err, "Loan")
		}
		if err := tx.AdjustBookQuantity(ctx, book.ID, 1); err != nil {
			return storeError(err, "Book")
		}
		loan.ReturnDate = &now
		loan.IsReturned = true

		result = &ReturnResult{Loan: loan, Message: "Book returned successfully"}

		if lateDays := helpers.CalendarDaysBetween(loan.DueDate, now); lateDays > 0 {
			fine := &models.Fine{
				Amount:       s.policy.DailyFine.Mul(decimal.NewFromInt(int64(lateDays))),
				Date:         now,
				IssuedBookID: loan.ID,
			}
			if err := tx.CreateFine(ctx, fine); err != nil {
				return storeError(err, "Fine")
			}
			result.Fine = fine
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := s.logger.Info().Str("loanID", result.Loan.ID.String()).Bool("alreadyReturned", result.AlreadyReturned)
	if result.Fine != nil {
		event = event.Str("fine", result.Fine.Amount.String())
	}
	event.Msg("Book returned")
	return result, nil
}

// ListLoans returns every loan
func (s *LendingService) ListLoans(ctx context.Context, caller *models.User) ([]*models.IssuedBook, error) {
	if err := authz.Authorize(caller, authz.ListLoans); err != nil {
		return nil, err
	}
	return s.store.ListLoans(ctx)
}
