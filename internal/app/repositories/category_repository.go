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

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db db.Querier
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(q db.Querier) *CategoryRepository {
	return &CategoryRepository{db: q}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	sql, args, err := psql.Insert("categories").
		Columns("id", "name", "description").
		Values(c.ID, c.Name, c.Description).
		ToSql()
	if err != nil {
		return buildError(err, "create category")
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapWriteError(err, "category")
	}
	return nil
}

// List returns every category ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	sql, args, err := psql.Select("id", "name", "description").From("categories").OrderBy("name").ToSql()
	if err != nil {
		return nil, buildError(err, "list categories")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Category, error) {
	sql, args, err := psql.Select("id", "name", "description").From("categories").Where(where).OrderBy("name").Limit(1).ToSql()
	if err != nil {
		return nil, buildError(err, "get category")
	}

	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err, "category")
	}
	return c, nil
}

// GetByName finds a category by exact name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

// FindByNameFold finds a category by name ignoring case
func (r *CategoryRepository) FindByNameFold(ctx context.Context, name string) (*models.Category, error) {
	return r.getOne(ctx, squirrel.ILike{"name": helpers.EscapeLike(name)})
}

// Update replaces the editable fields of the category with c.ID
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	sql, args, err := psql.Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return buildError(err, "update category")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err, "category")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// Delete removes the category with id
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete("categories").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildError(err, "delete category")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapDeleteError(err, "category")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}
