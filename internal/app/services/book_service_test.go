package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

func newBookFixture(t *testing.T) (*BookService, *fakeBooks) {
	t.Helper()
	ctx := context.Background()
	authors := &fakeAuthors{}
	categories := &fakeCategories{}

	_, err := NewAuthorService(authors, zerolog.Nop()).Create(ctx, adminUser, dto.AuthorRequest{Name: "Ada", Email: "ada@books.io"})
	require.NoError(t, err)
	_, err = NewAuthorService(authors, zerolog.Nop()).Create(ctx, adminUser, dto.AuthorRequest{Name: "Bo", Email: "bo@books.io"})
	require.NoError(t, err)
	_, err = NewCategoryService(categories, zerolog.Nop()).Create(ctx, adminUser, dto.CategoryRequest{Name: "Science", Description: "s"})
	require.NoError(t, err)

	books := &fakeBooks{}
	return NewBookService(books, authors, categories, zerolog.Nop()), books
}

func TestBookCreate(t *testing.T) {
	svc, books := newBookFixture(t)
	ctx := context.Background()
	req := dto.CreateBookRequest{Title: "Engines", Quantity: 3, AuthorName: "Ada", CategoryName: "Science"}

	_, err := svc.Create(ctx, studentUser, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, books.rows)

	book, err := svc.Create(ctx, adminUser, req)
	require.NoError(t, err)
	assert.Equal(t, "Ada", book.AuthorName)
	assert.Equal(t, "Science", book.CategoryName)

	_, err = svc.Create(ctx, adminUser, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	bad := req
	bad.Title, bad.AuthorName = "Other", "Nobody"
	_, err = svc.Create(ctx, adminUser, bad)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "Author not found", err.Error())

	bad.AuthorName, bad.CategoryName = "Ada", "Poetry"
	_, err = svc.Create(ctx, adminUser, bad)
	assert.Equal(t, "Category not found", err.Error())
}

func TestBookUpdatePartial(t *testing.T) {
	svc, _ := newBookFixture(t)
	ctx := context.Background()
	published := time.Date(1843, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, adminUser, dto.CreateBookRequest{
		Title: "Engines", PublicationDate: &published, Quantity: 3, AuthorName: "Ada", CategoryName: "Science",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, adminUser, "Engines", dto.UpdateBookRequest{
		Quantity:   nullable.NewNullableWithValue(7),
		AuthorName: nullable.NewNullableWithValue("Bo"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, "Bo", updated.AuthorName)
	assert.Equal(t, "Engines", updated.Title)
	require.NotNil(t, updated.PublicationDate)
	assert.Equal(t, published, *updated.PublicationDate)

	cleared, err := svc.Update(ctx, adminUser, "Engines", dto.UpdateBookRequest{PublicationDate: nullable.NewNullNullable[time.Time]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.PublicationDate)

	_, err = svc.Update(ctx, adminUser, "Engines", dto.UpdateBookRequest{Quantity: nullable.NewNullableWithValue(-1)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Update(ctx, adminUser, "Engines", dto.UpdateBookRequest{CategoryName: nullable.NewNullableWithValue("Poetry")})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.Update(ctx, adminUser, "Missing", dto.UpdateBookRequest{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	renamed, err := svc.Update(ctx, adminUser, "Engines", dto.UpdateBookRequest{Title: nullable.NewNullableWithValue("Analytical Engines")})
	require.NoError(t, err)
	assert.Equal(t, "Analytical Engines", renamed.Title)
}

func TestBookListAndDelete(t *testing.T) {
	svc, books := newBookFixture(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, adminUser, dto.CreateBookRequest{Title: title, Quantity: 1, AuthorName: "Ada", CategoryName: "Science"})
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Title)

	books.deleteErr = fmt.Errorf("fk: %w", apperrors.ErrResourceInUse)
	err = svc.Delete(ctx, adminUser, "A")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	books.deleteErr = nil
	require.NoError(t, svc.Delete(ctx, adminUser, "A"))
	_, err = svc.GetByTitle(ctx, "A")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
