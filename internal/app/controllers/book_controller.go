package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/middleware"
	"github.com/yigit/libraryhub/internal/pkg/helpers"
)

// BookCatalog is what BookController needs from the book service
type BookCatalog interface {
	Create(ctx context.Context, caller *models.User, req dto.CreateBookRequest) (*models.Book, error)
	List(ctx context.Context, limit, offset int) ([]*models.Book, int64, error)
	GetByTitle(ctx context.Context, title string) (*models.Book, error)
	Update(ctx context.Context, caller *models.User, title string, req dto.UpdateBookRequest) (*models.Book, error)
	Delete(ctx context.Context, caller *models.User, title string) error
}

// BookController handles book endpoints
type BookController struct {
	service BookCatalog
}

// NewBookController creates a new BookController
func NewBookController(service BookCatalog) *BookController {
	return &BookController{service: service}
}

// CreateBook godoc
// @Summary Create book
// @Description Admin only; author and category are referenced by name
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book"
// @Success 201 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Author or category not found"
// @Failure 409 {object} dto.ErrorResponse "Book with this title already exists"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.CreateBookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	book, err := c.service.Create(ctx.Request.Context(), user, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewBookResponse(book), "Book created successfully"))
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Param limit query int false "Page size (1-100)" default(5)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.BookResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	limit, offset, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	books, total, err := c.service.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, dto.NewBookResponse(b))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, limit, offset, len(items)),
	}, ""))
}

// GetBook godoc
// @Summary Get book by title
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param title path string true "Book title"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /books/{title} [get]
func (c *BookController) GetBook(ctx *gin.Context) {
	book, err := c.service.GetByTitle(ctx.Request.Context(), ctx.Param("title"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewBookResponse(book), ""))
}

// UpdateBook godoc
// @Summary Update book
// @Description Admin only; only supplied fields change
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title path string true "Book title"
// @Param request body dto.UpdateBookRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /books/{title} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	book, err := c.service.Update(ctx.Request.Context(), user, ctx.Param("title"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewBookResponse(book), "Book updated successfully"))
}

// DeleteBook godoc
// @Summary Delete book
// @Description Admin only
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param title path string true "Book title"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Book has loan history"
// @Router /books/{title} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), user, ctx.Param("title")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Book deleted successfully"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: msg}, msg))
}
