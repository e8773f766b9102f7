package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/middleware"
)

// AuthorCatalog is what AuthorController needs from the author service
type AuthorCatalog interface {
	Create(ctx context.Context, caller *models.User, req dto.AuthorRequest) (*models.Author, error)
	List(ctx context.Context) ([]*models.Author, error)
	GetByEmail(ctx context.Context, caller *models.User, email string) (*models.Author, error)
	Update(ctx context.Context, caller *models.User, email string, req dto.AuthorRequest) (*models.Author, error)
	Delete(ctx context.Context, caller *models.User, email string) error
}

// AuthorController handles author endpoints
type AuthorController struct {
	service AuthorCatalog
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(service AuthorCatalog) *AuthorController {
	return &AuthorController{service: service}
}

// CreateAuthor godoc
// @Summary Create author
// @Description Admin only
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AuthorRequest true "Author"
// @Success 201 {object} dto.APIResponse{data=dto.AuthorResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Author with this email already exists"
// @Router /authors [post]
func (c *AuthorController) CreateAuthor(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	author, err := c.service.Create(ctx.Request.Context(), user, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewAuthorResponse(author), "Author created successfully"))
}

// ListAuthors godoc
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AuthorResponse}
// @Router /authors [get]
func (c *AuthorController) ListAuthors(ctx *gin.Context) {
	authors, err := c.service.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, dto.NewAuthorResponse(a))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out, ""))
}

// GetAuthor godoc
// @Summary Get author by email
// @Description Admin only
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param email path string true "Author email"
// @Success 200 {object} dto.APIResponse{data=dto.AuthorResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /authors/by-email/{email} [get]
func (c *AuthorController) GetAuthor(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	author, err := c.service.GetByEmail(ctx.Request.Context(), user, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAuthorResponse(author), ""))
}

// UpdateAuthor godoc
// @Summary Replace author
// @Description Admin only
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Author email"
// @Param request body dto.AuthorRequest true "Author"
// @Success 200 {object} dto.APIResponse{data=dto.AuthorResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /authors/by-email/{email} [put]
func (c *AuthorController) UpdateAuthor(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	author, err := c.service.Update(ctx.Request.Context(), user, ctx.Param("email"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAuthorResponse(author), "Author updated successfully"))
}

// DeleteAuthor godoc
// @Summary Delete author
// @Description Admin only
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param email path string true "Author email"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Author still has books"
// @Router /authors/by-email/{email} [delete]
func (c *AuthorController) DeleteAuthor(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	email := ctx.Param("email")
	if err := c.service.Delete(ctx.Request.Context(), user, email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Author (" + email + ") deleted successfully"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: msg}, msg))
}
