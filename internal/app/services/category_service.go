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

// CategoryStore persists categories
type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	List(ctx context.Context) ([]*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	FindByNameFold(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService manages categories, keyed by name
type CategoryService struct {
	repo   CategoryStore
	logger zerolog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo CategoryStore, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) nameTaken(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("error checking category name: %w", err)
	}
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, caller *models.User, req dto.CategoryRequest) (*models.Category, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	taken, err := s.nameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Category with this name already exists")
	}

	category := &models.Category{Name: name, Description: req.Description}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, storeError(err, "Category")
	}

	s.logger.Info().Str("categoryID", category.ID.String()).Msg("Category created")
	return category, nil
}

// List returns all categories
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repo.List(ctx)
}

// GetByName looks a category up ignoring case
func (s *CategoryService) GetByName(ctx context.Context, caller *models.User, name string) (*models.Category, error) {
	if err := authz.Authorize(caller, authz.ViewCatalogEntry); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByNameFold(ctx, name)
	if err != nil {
		return nil, storeError(err, "Category")
	}
	return category, nil
}

// Update replaces the editable fields of the category with name
func (s *CategoryService) Update(ctx context.Context, caller *models.User, name string, req dto.CategoryRequest) (*models.Category, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, storeError(err, "Category")
	}

	newName := strings.TrimSpace(req.Name)
	if newName != category.Name {
		taken, err := s.nameTaken(ctx, newName)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Category with this name already exists")
		}
	}

	category.Name = newName
	category.Description = req.Description
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, storeError(err, "Category")
	}
	return category, nil
}

// Delete removes the category with name
func (s *CategoryService) Delete(ctx context.Context, caller *models.User, name string) error {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return err
	}

	category, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return storeError(err, "Category")
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return storeError(err, "Category")
	}

	s.logger.Info().Str("categoryID", category.ID.String()).Msg("Category deleted")
	return nil
}
