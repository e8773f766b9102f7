package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/db"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

// IssuedBookRepository handles database operations for loans
type IssuedBookRepository struct {
	db db.Querier
}

// NewIssuedBookRepository creates a new loan repository
func NewIssuedBookRepository(q db.Querier) *IssuedBookRepository {
	return &IssuedBookRepository{db: q}
}

func loanSelect() squirrel.SelectBuilder {
	return psql.Select(
		"ib.id", "ib.issue_date", "ib.due_date", "ib.return_date", "ib.is_returned",
		"ib.student_id", "ib.book_id", "u.name", "b.title",
	).
		From("issued_books ib").
		Join("users u ON u.id = ib.student_id").
		Join("books b ON b.id = ib.book_id")
}

func scanLoan(row pgx.Row) (*models.IssuedBook, error) {
	var l models.IssuedBook
	err := row.Scan(
		&l.ID, &l.IssueDate, &l.DueDate, &l.ReturnDate, &l.IsReturned,
		&l.StudentID, &l.BookID, &l.StudentName, &l.BookTitle,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts an open loan
func (r *IssuedBookRepository) Create(ctx context.Context, l *models.IssuedBook) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	sql, args, err := psql.Insert("issued_books").
		Columns("id", "issue_date", "due_date", "is_returned", "student_id", "book_id").
		Values(l.ID, l.IssueDate, l.DueDate, false, l.StudentID, l.BookID).
		ToSql()
	if err != nil {
		return buildError(err, "create loan")
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		err = mapWriteError(err, "loan")
		if apperrors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return fmt.Errorf("open loan: %w", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// HasOpen reports whether the student holds an unreturned copy of the book
func (r *IssuedBookRepository) HasOpen(ctx context.Context, studentID, bookID uuid.UUID) (bool, error) {
	sub, args, err := psql.Select("1").From("issued_books").
		Where(squirrel.Eq{"student_id": studentID, "book_id": bookID, "is_returned": false}).
		ToSql()
	if err != nil {
		return false, buildError(err, "open loan")
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking open loan: %w", err)
	}
	return exists, nil
}

// Latest returns and locks the most recent loan of the book to the student
func (r *IssuedBookRepository) Latest(ctx context.Context, studentID, bookID uuid.UUID) (*models.IssuedBook, error) {
	sql, args, err := loanSelect().
		Where(squirrel.Eq{"ib.student_id": studentID, "ib.book_id": bookID}).
		OrderBy("ib.issue_date DESC", "ib.id DESC").
		Limit(1).
		Suffix("FOR UPDATE OF ib").
		ToSql()
	if err != nil {
		return nil, buildError(err, "latest loan")
	}

	l, err := scanLoan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err, "loan")
	}
	return l, nil
}

// MarkReturned closes an open loan at the given time
func (r *IssuedBookRepository) MarkReturned(ctx context.Context, loanID uuid.UUID, at time.Time) error {
	sql, args, err := psql.Update("issued_books").
		Set("return_date", at).
		Set("is_returned", true).
		Where(squirrel.Eq{"id": loanID, "is_returned": false}).
		ToSql()
	if err != nil {
		return buildError(err, "return loan")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err, "loan")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("open loan: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// List returns every loan, newest first
func (r *IssuedBookRepository) List(ctx context.Context) ([]*models.IssuedBook, error) {
	sql, args, err := loanSelect().OrderBy("ib.issue_date DESC", "ib.id").ToSql()
	if err != nil {
		return nil, buildError(err, "list loans")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing loans: %w", err)
	}
	defer rows.Close()

	loans := make([]*models.IssuedBook, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
