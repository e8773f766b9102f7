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

// CourseCatalog is what CourseController needs from the course service
type CourseCatalog interface {
	Create(ctx context.Context, caller *models.User, req dto.CourseRequest) (*models.Course, error)
	List(ctx context.Context, limit, offset int) ([]*models.Course, int64, error)
	GetByName(ctx context.Context, name string) (*models.Course, error)
	Update(ctx context.Context, caller *models.User, name string, req dto.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, caller *models.User, name string) error
}

// CourseController handles course endpoints
type CourseController struct {
	service CourseCatalog
}

// NewCourseController creates a new CourseController
func NewCourseController(service CourseCatalog) *CourseController {
	return &CourseController{service: service}
}

// CreateCourse godoc
// @Summary Create course
// @Description Admin only
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /course [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.service.Create(ctx.Request.Context(), user, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCourseResponse(course), "Course created successfully"))
}

// ListCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Param limit query int false "Page size (1-100)" default(5)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.CourseResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Router /course [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	limit, offset, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, total, err := c.service.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.NewCourseResponse(course))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, limit, offset, len(items)),
	}, ""))
}

// GetCourse godoc
// @Summary Get course by name
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param name path string true "Course name"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /course/{name} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.service.GetByName(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course), ""))
}

// UpdateCourse godoc
// @Summary Replace course
// @Description Admin only
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Course name"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /course/{name} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.service.Update(ctx.Request.Context(), user, ctx.Param("name"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course), "Course updated successfully"))
}

// DeleteCourse godoc
// @Summary Delete course
// @Description Admin only
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param name path string true "Course name"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Course still has students"
// @Router /course/{name} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	name := ctx.Param("name")
	if err := c.service.Delete(ctx.Request.Context(), user, name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Course (" + name + ") deleted successfully"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: msg}, msg))
}
