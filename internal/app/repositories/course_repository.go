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

var courseColumns = []string{"id", "name", "description", "year"}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db db.Querier
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{db: q}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var (
		c    models.Course
		year int16
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &year); err != nil {
		return nil, err
	}
	c.Year = models.Year(year)
	return &c, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	sql, args, err := psql.Insert("courses").
		Columns(courseColumns...).
		Values(c.ID, c.Name, c.Description, int16(c.Year)).
		ToSql()
	if err != nil {
		return buildError(err, "create course")
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapWriteError(err, "course")
	}
	return nil
}

// List returns one page of courses ordered by name
func (r *CourseRepository) List(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).
		From("courses").
		OrderBy("name", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, buildError(err, "list courses")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0, limit)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Count returns the total number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return 0, buildError(err, "count courses")
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return total, nil
}

func (r *CourseRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).From("courses").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, buildError(err, "get course")
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err, "course")
	}
	return c, nil
}

// GetByName finds a course by exact name
func (r *CourseRepository) GetByName(ctx context.Context, name string) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

// GetByID finds a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// Update replaces the editable fields of the course with c.ID
func (r *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	sql, args, err := psql.Update("courses").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("year", int16(c.Year)).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return buildError(err, "update course")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err, "course")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("course: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// Delete removes the course with id
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildError(err, "delete course")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapDeleteError(err, "course")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("course: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}
