package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/auth"
)

// AdminStore is the slice of the user repository the seeder needs
type AdminStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *appModels.User) error
}

// Admin describes the account created on an empty database
type Admin struct {
	Name     string
	Email    string
	Password string
}

// CreateDefaultData makes sure at least one admin can log in.
// An existing account with the same email is left untouched.
func CreateDefaultData(ctx context.Context, users AdminStore, admin Admin, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		lgr.Warn().Msg("Seed admin email or password not configured, skipping default admin")
		return nil
	}

	lgr.Info().Str("email", email).Msg("Checking default admin user...")
	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check default admin: %w", err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	hashed, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	u := &appModels.User{
		Name:         admin.Name,
		Email:        email,
		PasswordHash: hashed,
		Role:         appModels.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		// Another instance seeded it first
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create default admin: %w", err)
	}

	lgr.Info().Str("adminID", u.ID.String()).Msg("Default admin user created successfully")
	return nil
}
