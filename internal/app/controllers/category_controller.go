package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/middleware"
)

// CategoryCatalog is what CategoryController needs from the category service
type CategoryCatalog interface {
	Create(ctx context.Context, caller *models.User, req dto.CategoryRequest) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	GetByName(ctx context.Context, caller *models.User, name string) (*models.Category, error)
	Update(ctx context.Context, caller *models.User, name string, req dto.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, caller *models.User, name string) error
}

// CategoryController handles category endpoints
type CategoryController struct {
	service CategoryCatalog
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(service CategoryCatalog) *CategoryController {
	return &CategoryController{service: service}
}

// CreateCategory godoc
// @Summary Create category
// @Description Admin only
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /category [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	category, err := c.service.Create(ctx.Request.Context(), user, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCategoryResponse(category), "Category created successfully"))
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse}
// @Router /category [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.service.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.NewCategoryResponse(cat))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out, ""))
}

// GetCategory godoc
// @Summary Get category by name
// @Description Admin only; the name match ignores case
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /category/by-name/{name} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	category, err := c.service.GetByName(ctx.Request.Context(), user, ctx.Param("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCategoryResponse(category), ""))
}

// UpdateCategory godoc
// @Summary Replace category
// @Description Admin only
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Param request body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /category/by-name/{name} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	category, err := c.service.Update(ctx.Request.Context(), user, ctx.Param("name"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCategoryResponse(category), "Category updated successfully"))
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Admin only
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Category still has books"
// @Router /category/by-name/{name} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	name := ctx.Param("name")
	if err := c.service.Delete(ctx.Request.Context(), user, name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Category (" + name + ") deleted successfully"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: msg}, msg))
}
