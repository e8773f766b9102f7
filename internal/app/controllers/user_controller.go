package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/middleware"
	"github.com/yigit/libraryhub/internal/pkg/auth"
)

// AccountService is what UserController needs from the auth service
type AccountService interface {
	Register(ctx context.Context, caller *models.User, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (auth.IssuedToken, error)
	Logout(ctx context.Context, caller *models.User, claims *auth.Claims) error
	UpdateProfile(ctx context.Context, caller *models.User, req dto.UpdateProfileRequest) (*models.User, error)
	DeleteProfile(ctx context.Context, caller *models.User) error
	ListUsers(ctx context.Context, caller *models.User) ([]*models.User, error)
}

// UserController handles account endpoints
type UserController struct {
	service AccountService
	logger  zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(service AccountService, logger zerolog.Logger) *UserController {
	return &UserController{service: service, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student account. Creating an admin account requires an admin bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Admin role requested without admin token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Email or enroll number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid registration request payload")
		return
	}

	caller, _ := middleware.CurrentUser(ctx)
	user, err := c.service.Register(ctx.Request.Context(), caller, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewUserResponse(user), "User registered successfully"))
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns an access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.service.Login(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   token.ExpiresIn(time.Now()),
	}, "Login successful"))
}

// Logout revokes the presented token
// @Summary Logout
// @Description Revokes the bearer token used for this request
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/logout [post]
func (c *UserController) Logout(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	claims, _ := middleware.CurrentClaims(ctx)

	if err := c.service.Logout(ctx.Request.Context(), user, claims); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	msg := "User " + user.Email + " logged out successfully"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: msg}, msg))
}

// UpdateProfile changes the caller's own profile
// @Summary Update own profile
// @Description Partially updates name, password, enroll number, mobile number and gender. Absent fields are unchanged; null clears optional fields.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Enroll number already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/update-profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.service.UpdateProfile(ctx.Request.Context(), user, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(updated), "Profile updated successfully"))
}

// DeleteProfile deletes the caller's own student account
// @Summary Delete own profile
// @Description Students only
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Account deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only students can delete their profile"
// @Failure 409 {object} dto.ErrorResponse "Account has loan history"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/delete-profile [delete]
func (c *UserController) DeleteProfile(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteProfile(ctx.Request.Context(), user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	msg := "Student account (" + user.Email + ") deleted successfully"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: msg}, msg))
}

// ListUsers returns every account
// @Summary List users
// @Description Admin only
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Users"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/all [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	users, err := c.service.ListUsers(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserListResponse(users), ""))
}
