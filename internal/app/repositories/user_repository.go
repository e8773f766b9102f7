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

var userColumns = []string{
	"id", "name", "email", "password", "role", "created_at",
	"enroll_number", "mobile_number", "gender", "course_id",
}

// UserRepository handles database operations for users
type UserRepository struct {
	db db.Querier
}

// NewUserRepository creates a new user repository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{db: q}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u      models.User
		role   string
		gender *string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt,
		&u.EnrollNumber, &u.MobileNumber, &gender, &u.CourseID,
	)
	if err != nil {
		return nil, err
	}

	u.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	if gender != nil {
		g := models.Gender(*gender)
		u.Gender = &g
	}
	return &u, nil
}

func genderValue(g *models.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

// Create inserts a new user and fills ID and CreatedAt
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	sql, args, err := psql.Insert("users").
		Columns("id", "name", "email", "password", "role", "enroll_number", "mobile_number", "gender", "course_id").
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.Role.String(), u.EnrollNumber, u.MobileNumber, genderValue(u.Gender), u.CourseID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return buildError(err, "create user")
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&u.CreatedAt); err != nil {
		return mapWriteError(err, "user")
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, buildError(err, "get user")
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// GetByEmail finds a user by exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByID finds a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) exists(ctx context.Context, where squirrel.Sqlizer) (bool, error) {
	sub, args, err := psql.Select("1").From("users").Where(where).ToSql()
	if err != nil {
		return false, buildError(err, "user exists")
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

// EnrollNumberTaken checks if another user holds enrollNumber. exclude may be uuid.Nil.
func (r *UserRepository) EnrollNumberTaken(ctx context.Context, enrollNumber string, exclude uuid.UUID) (bool, error) {
	where := squirrel.And{squirrel.Eq{"enroll_number": enrollNumber}}
	if exclude != uuid.Nil {
		where = append(where, squirrel.NotEq{"id": exclude})
	}
	return r.exists(ctx, where)
}

// List returns every user ordered by creation time
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, buildError(err, "list users")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes the profile fields of u. Email, role and course are not editable.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	sql, args, err := psql.Update("users").
		Set("name", u.Name).
		Set("password", u.PasswordHash).
		Set("enroll_number", u.EnrollNumber).
		Set("mobile_number", u.MobileNumber).
		Set("gender", genderValue(u.Gender)).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return buildError(err, "update user")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}

// Delete removes the user with id
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildError(err, "delete user")
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapDeleteError(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user: %w", apperrors.ErrResourceNotFound)
	}
	return nil
}
