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
)

var authorColumns = []string{"id", "name", "email", "nationality", "created_at"}

// AuthorRepository handles database operations for authors
type AuthorRepository struct {
	db db.Querier
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(q db.Querier) *AuthorRepository {
	return &AuthorRepository{db: q}
}

func scanAuthor(row pgx.Row) (*models.Author, error) {
	var a models.Author
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Nationality, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new author, assigning its ID if unset
func (r *AuthorRepository) Create(ctx context.Context, a *models.Author) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	sql, args, err := psql.Insert("authors").
		Columns("id", "name", "email", "nationality").
		Values(a.ID, a.Name, a.Email, a.Nationality).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return buildError(err, "create author")
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt); err != nil {
		return mapWriteError(err, "author")
	}
	return nil
}

// List returns every author ordered by name
func (r *AuthorRepository) List(ctx context.Context) ([]*models.Author, error) {
	sql, args, err := psql.Select(authorColumns...).From("authors").OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, buildError(err, "list authors")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing authors: %w", err)
	}
	defer rows.Close()

	authors := make([]*models.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *AuthorRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Author, error) {
	sql, args, err := psql.Select(authorColumns...).From("authors").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, buildError(err, "get author")
	}

	a, err := scanAuthor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err, "author")
	}
	return a, nil
}

// GetByEmail finds an author by exact email
func (r *AuthorRepository) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByName finds the first author with an exact name
func (r *AuthorRepository) GetByName(ctx context.Context, name string) (*models.Author, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

// Update replaces the editable fields of the author with a.ID
func (r *AuthorRepository) Update(ctx context.Context, a *models.Author) error {
	sql, args, err := psql.Update("authors").
		Set("name", a.Name).
		Set("email", a.Email).
		Set("nationality", a.Nationality).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return buildError(err, "update author")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err, "author")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("author: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// Delete removes the author with id
func (r *AuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete("authors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildError(err, "delete author")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapDeleteError(err, "author")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("author: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}
