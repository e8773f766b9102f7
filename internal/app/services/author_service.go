package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/libraryhub/internal/app/auth"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

// AuthorStore persists authors
type AuthorStore interface {
	Create(ctx context.Context, a *models.Author) error
	List(ctx context.Context) ([]*models.Author, error)
	GetByEmail(ctx context.Context, email string) (*models.Author, error)
	GetByName(ctx context.Context, name string) (*models.Author, error)
	Update(ctx context.Context, a *models.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorService manages authors, keyed by email
type AuthorService struct {
	repo   AuthorStore
	logger zerolog.Logger
}

// NewAuthorService creates a new AuthorService
func NewAuthorService(repo AuthorStore, logger zerolog.Logger) *AuthorService {
	return &AuthorService{repo: repo, logger: logger}
}

func (s *AuthorService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("error checking author email: %w", err)
	}
}

// Create adds an author
func (s *AuthorService) Create(ctx context.Context, caller *models.User, req dto.AuthorRequest) (*models.Author, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Author with this email already exists")
	}

	author := &models.Author{
		Name:        strings.TrimSpace(req.Name),
		Email:       req.Email,
		Nationality: req.Nationality,
	}
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, storeError(err, "Author")
	}

	s.logger.Info().Str("authorID", author.ID.String()).Msg("Author created")
	return author, nil
}

// List returns all authors
func (s *AuthorService) List(ctx context.Context) ([]*models.Author, error) {
	return s.repo.List(ctx)
}

// GetByEmail returns one author
func (s *AuthorService) GetByEmail(ctx context.Context, caller *models.User, email string) (*models.Author, error) {
	if err := authz.Authorize(caller, authz.ViewCatalogEntry); err != nil {
		return nil, err
	}

	author, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "Author")
	}
	return author, nil
}

// Update replaces the editable fields of the author with email
func (s *AuthorService) Update(ctx context.Context, caller *models.User, email string, req dto.AuthorRequest) (*models.Author, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}

	author, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "Author")
	}

	if req.Email != author.Email {
		taken, err := s.emailTaken(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Author with this email already exists")
		}
	}

	author.Name = strings.TrimSpace(req.Name)
	author.Email = req.Email
	author.Nationality = req.Nationality
	if err := s.repo.Update(ctx, author); err != nil {
		return nil, storeError(err, "Author")
	}
	return author, nil
}

// Delete removes the author with email
func (s *AuthorService) Delete(ctx context.Context, caller *models.User, email string) error {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return err
	}

	author, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return storeError(err, "Author")
	}

	if err := s.repo.Delete(ctx, author.ID); err != nil {
		return storeError(err, "Author")
	}

	s.logger.Info().Str("authorID", author.ID.String()).Msg("Author deleted")
	return nil
}
