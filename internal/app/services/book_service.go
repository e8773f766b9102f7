package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/rs/zerolog"
	authz "github.com/yigit/libraryhub/internal/app/auth"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

// BookStore persists books
type BookStore interface {
	Create(ctx context.Context, b *models.Book) error
	List(ctx context.Context, limit, offset int) ([]*models.Book, error)
	Count(ctx context.Context) (int64, error)
	GetByTitle(ctx context.Context, title string) (*models.Book, error)
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorFinder resolves an author by exact name
type AuthorFinder interface {
	GetByName(ctx context.Context, name string) (*models.Author, error)
}

// CategoryFinder resolves a category by exact name
type CategoryFinder interface {
	GetByName(ctx context.Context, name string) (*models.Category, error)
}

// BookService manages the book inventory, keyed by title
type BookService struct {
	repo       BookStore
	authors    AuthorFinder
	categories CategoryFinder
	logger     zerolog.Logger
}

// NewBookService creates a new BookService
func NewBookService(repo BookStore, authors AuthorFinder, categories CategoryFinder, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, authors: authors, categories: categories, logger: logger}
}

func (s *BookService) titleTaken(ctx context.Context, title string) (bool, error) {
	_, err := s.repo.GetByTitle(ctx, title)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("error checking book title: %w", err)
	}
}

func (s *BookService) resolveAuthor(ctx context.Context, b *models.Book, name string) error {
	author, err := s.authors.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return storeError(err, "Author")
	}
	b.AuthorID, b.AuthorName = author.ID, author.Name
	return nil
}

func (s *BookService) resolveCategory(ctx context.Context, b *models.Book, name string) error {
	category, err := s.categories.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return storeError(err, "Category")
	}
	b.CategoryID, b.CategoryName = category.ID, category.Name
	return nil
}

// Create adds a book under an existing author and category
func (s *BookService) Create(ctx context.Context, caller *models.User, req dto.CreateBookRequest) (*models.Book, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}
	if req.Quantity < 0 {
		return nil, apperrors.NewValidationError("quantity cannot be negative")
	}

	book := &models.Book{
		Title:           strings.TrimSpace(req.Title),
		PublicationDate: req.PublicationDate,
		Quantity:        req.Quantity,
	}
	if err := s.resolveAuthor(ctx, book, req.AuthorName); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(ctx, book, req.CategoryName); err != nil {
		return nil, err
	}

	taken, err := s.titleTaken(ctx, book.Title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Book with this title already exists")
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, storeError(err, "Book")
	}

	s.logger.Info().Str("bookID", book.ID.String()).Int("quantity", book.Quantity).Msg("Book created")
	return book, nil
}

// List returns one page of books and the total count
func (s *BookService) List(ctx context.Context, limit, offset int) ([]*models.Book, int64, error) {
	books, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// GetByTitle returns one book
func (s *BookService) GetByTitle(ctx context.Context, title string) (*models.Book, error) {
	book, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, storeError(err, "Book")
	}
	return book, nil
}

// Update changes only the supplied fields of the book with title
// valueOrNil returns nil for an explicit JSON null.
func valueOrNil[T any](n nullable.Nullable[T]) *T {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

func (s *BookService) Update(ctx context.Context, caller *models.User, title string, req dto.UpdateBookRequest) (*models.Book, error) {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, storeError(err, "Book")
	}

	if req.Title.IsSpecified() {
		newTitle, err := req.Title.Get()
		newTitle = strings.TrimSpace(newTitle)
		if err != nil || newTitle == "" {
			return nil, apperrors.NewValidationError("title cannot be empty")
		}
		if newTitle != book.Title {
			taken, err := s.titleTaken(ctx, newTitle)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.NewConflictError("Book with this title already exists")
			}
		}
		book.Title = newTitle
	}

	if req.PublicationDate.IsSpecified() {
		book.PublicationDate = valueOrNil(req.PublicationDate)
	}

	if req.Quantity.IsSpecified() {
		qty, err := req.Quantity.Get()
		if err != nil || qty < 0 {
			return nil, apperrors.NewValidationError("quantity must be a non-negative integer")
		}
		book.Quantity = qty
	}

	if req.AuthorName.IsSpecified() {
		name, err := req.AuthorName.Get()
		if err != nil {
			return nil, apperrors.NewValidationError("author_name cannot be null")
		}
		if err := s.resolveAuthor(ctx, book, name); err != nil {
			return nil, err
		}
	}

	if req.CategoryName.IsSpecified() {
		name, err := req.CategoryName.Get()
		if err != nil {
			return nil, apperrors.NewValidationError("category_name cannot be null")
		}
		if err := s.resolveCategory(ctx, book, name); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, storeError(err, "Book")
	}
	return book, nil
}

// Delete removes the book with title
func (s *BookService) Delete(ctx context.Context, caller *models.User, title string) error {
	if err := authz.Authorize(caller, authz.ManageCatalog); err != nil {
		return err
	}

	book, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return storeError(err, "Book")
	}

	if err := s.repo.Delete(ctx, book.ID); err != nil {
		if errors.Is(err, apperrors.ErrResourceInUse) {
			return apperrors.NewConflictError("Book has loan history and cannot be deleted")
		}
		return storeError(err, "Book")
	}

	s.logger.Info().Str("bookID", book.ID.String()).Msg("Book deleted")
	return nil
}
