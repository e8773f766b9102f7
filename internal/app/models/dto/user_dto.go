package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/yigit/libraryhub/internal/app/models"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name         string         `json:"name" binding:"required,notblank,max=100"`
	Email        string         `json:"email" binding:"required,email,max=100"`
	Password     string         `json:"password" binding:"required,min=8,max=64"`
	Role         *models.Role   `json:"role,omitempty" swaggertype:"string" enums:"admin,student"`
	EnrollNumber *string        `json:"enroll_number,omitempty" binding:"omitempty,max=30"`
	MobileNumber *string        `json:"mobile_number,omitempty" binding:"omitempty,max=15"`
	Gender       *models.Gender `json:"gender,omitempty" enums:"Male,Female,Other"`
	CourseID     *uuid.UUID     `json:"course_id,omitempty" swaggertype:"string" format:"uuid"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in,omitempty" example:"86400"`
}

// UpdateProfileRequest is a partial profile update; absent fields are left unchanged
type UpdateProfileRequest struct {
	Name         nullable.Nullable[string]        `json:"name,omitempty" swaggertype:"string"`
	Password     nullable.Nullable[string]        `json:"password,omitempty" swaggertype:"string"`
	EnrollNumber nullable.Nullable[string]        `json:"enroll_number,omitempty" swaggertype:"string"`
	MobileNumber nullable.Nullable[string]        `json:"mobile_number,omitempty" swaggertype:"string"`
	Gender       nullable.Nullable[models.Gender] `json:"gender,omitempty" swaggertype:"string" enums:"Male,Female,Other"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID           uuid.UUID      `json:"id" swaggertype:"string" format:"uuid"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         models.Role    `json:"role" swaggertype:"string" enums:"admin,student"`
	EnrollNumber *string        `json:"enroll_number"`
	MobileNumber *string        `json:"mobile_number"`
	Gender       *models.Gender `json:"gender" swaggertype:"string"`
	CourseID     *uuid.UUID     `json:"course_id" swaggertype:"string" format:"uuid"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewUserResponse maps a user model to its response
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		EnrollNumber: u.EnrollNumber,
		MobileNumber: u.MobileNumber,
		Gender:       u.Gender,
		CourseID:     u.CourseID,
		CreatedAt:    u.CreatedAt,
	}
}

// NewUserListResponse maps a slice of users
func NewUserListResponse(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
