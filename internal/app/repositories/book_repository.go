package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/db"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/helpers"
)

// BookRepository handles database operations for books
type BookRepository struct {
	db db.Querier
}

// NewBookRepository creates a new book repository
func NewBookRepository(q db.Querier) *BookRepository {
	return &BookRepository{db: q}
}

func bookSelect() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.title", "b.publication_date", "b.quantity", "b.author_id", "b.category_id",
		"a.name", "c.name",
	).
		From("books b").
		Join("authors a ON a.id = b.author_id").
		Join("categories c ON c.id = b.category_id")
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var b models.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.PublicationDate, &b.Quantity, &b.AuthorID, &b.CategoryID,
		&b.AuthorName, &b.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new book
func (r *BookRepository) Create(ctx context.Context, b *models.Book) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	sql, args, err := psql.Insert("books").
		Columns("id", "title", "publication_date", "quantity", "author_id", "category_id").
		Values(b.ID, b.Title, b.PublicationDate, b.Quantity, b.AuthorID, b.CategoryID).
		ToSql()
	if err != nil {
		return buildError(err, "create book")
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapWriteError(err, "book")
	}
	return nil
}

// List returns one page of books ordered by title
func (r *BookRepository) List(ctx context.Context, limit, offset int) ([]*models.Book, error) {
	sql, args, err := bookSelect().
		OrderBy("b.title", "b.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, buildError(err, "list books")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	defer rows.Close()

	books := make([]*models.Book, 0, limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Count returns the total number of books
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").From("books").ToSql()
	if err != nil {
		return 0, buildError(err, "count books")
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting books: %w", err)
	}
	return total, nil
}

// GetByTitle finds a book by exact title
func (r *BookRepository) GetByTitle(ctx context.Context, title string) (*models.Book, error) {
	return r.getOne(ctx, squirrel.Eq{"b.title": title}, false)
}

// LockBookByTitle loads and row-locks a book for the rest of the transaction.
// foldCase matches the title ignoring case.
func (r *BookRepository) LockBookByTitle(ctx context.Context, title string, foldCase bool) (*models.Book, error) {
	var where squirrel.Sqlizer = squirrel.Eq{"b.title": title}
	if foldCase {
		where = squirrel.ILike{"b.title": helpers.EscapeLike(title)}
	}
	return r.getOne(ctx, where, true)
}

func (r *BookRepository) getOne(ctx context.Context, where squirrel.Sqlizer, lock bool) (*models.Book, error) {
	q := bookSelect().Where(where).OrderBy("b.title").Limit(1)
	if lock {
		q = q.Suffix("FOR UPDATE OF b")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, buildError(err, "get book")
	}

	b, err := scanBook(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err, "book")
	}
	return b, nil
}

// Update writes all columns of b
func (r *BookRepository) Update(ctx context.Context, b *models.Book) error {
	sql, args, err := psql.Update("books").
		Set("title", b.Title).
		Set("publication_date", b.PublicationDate).
		Set("quantity", b.Quantity).
		Set("author_id", b.AuthorID).
		Set("category_id", b.CategoryID).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return buildError(err, "update book")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err, "book")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// AdjustQuantity adds delta to the on-hand count. The CHECK constraint keeps it non-negative.
func (r *BookRepository) AdjustQuantity(ctx context.Context, bookID uuid.UUID, delta int) error {
	sql, args, err := psql.Update("books").
		Set("quantity", squirrel.Expr("quantity + ?", delta)).
		Where(squirrel.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return buildError(err, "adjust book quantity")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		err = mapWriteError(err, "book quantity")
		if apperrors.Is(err, apperrors.ErrValidationFailed) {
			return fmt.Errorf("book quantity: %w", apperrors.ErrOutOfStock)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// Delete removes the book with id
func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete("books").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildError(err, "delete book")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapDeleteError(err, "book")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}
