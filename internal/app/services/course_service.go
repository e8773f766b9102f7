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

// CourseStore persists courses
type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	List(ctx context.Context, limit, offset int) ([]*models.Course, error)
	Count(ctx context.Context) (int64, error)
	GetByName(ctx context.Context, name string) (*models.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseService manages courses, keyed by name
type CourseService struct {
	repo   CourseStore
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo CourseStore, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, logger: logger}
}

func (s *CourseService) nameTaken(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("error checking course name: %w", err)
	}
}

func validYear(y models.Year) error {
	if !y.Valid() {
		return apperrors.NewValidationError("year must be between 1 and 4")
	}
	return nil
}

// Create adds a course
func (s *CourseService) Create(ctx context.Context, caller *models.User, req dto.CourseRequest) (*models.Course, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}
	if err := validYear(req.Year); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	taken, err := s.nameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Course with this name already exists")
	}

	course := &models.Course{Name: name, Description: req.Description, Year: req.Year}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, storeError(err, "Course")
	}

	s.logger.Info().Str("courseID", course.ID.String()).Msg("Course created")
	return course, nil
}

// List returns one page of courses and the total count
func (s *CourseService) List(ctx context.Context, limit, offset int) ([]*models.Course, int64, error) {
	courses, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// GetByName returns one course
func (s *CourseService) GetByName(ctx context.Context, name string) (*models.Course, error) {
	course, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, storeError(err, "Course")
	}
	return course, nil
}

// Update replaces the editable fields of the course with name
func (s *CourseService) Update(ctx context.Context, caller *models.User, name string, req dto.CourseRequest) (*models.Course, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}
	if err := validYear(req.Year); err != nil {
		return nil, err
	}

	course, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, storeError(err, "Course")
	}

	newName := strings.TrimSpace(req.Name)
	if newName != course.Name {
		taken, err := s.nameTaken(ctx, newName)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Course with this name already exists")
		}
	}

	course.Name = newName
	course.Description = req.Description
	course.Year = req.Year
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, storeError(err, "Course")
	}
	return course, nil
}

// Delete removes the course with name
func (s *CourseService) Delete(ctx context.Context, caller *models.User, name string) error {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return err
	}

	course, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return storeError(err, "Course")
	}

	if err := s.repo.Delete(ctx, course.ID); err != nil {
		return storeError(err, "Course")
	}

	s.logger.Info().Str("courseID", course.ID.String()).Msg("Course deleted")
	return nil
}
