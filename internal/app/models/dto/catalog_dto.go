package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/libraryhub/internal/app/models"
)

// AuthorRequest is used for both create and full-replace update
type AuthorRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=35"`
	Email       string  `json:"email" binding:"required,email,max=35"`
	Nationality *string `json:"nationality,omitempty" binding:"omitempty,max=50"`
}

// AuthorResponse represents author information
type AuthorResponse struct {
	ID          uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Nationality *string   `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAuthorResponse maps an author model to its response
func NewAuthorResponse(a *models.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
	}
}

// CategoryRequest is used for both create and full-replace update
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=35"`
	Description string `json:"description" binding:"required"`
}

// CategoryResponse represents category information
type CategoryResponse struct {
	ID          uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// NewCategoryResponse maps a category model to its response
func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// CourseRequest is used for both create and full-replace update
type CourseRequest struct {
	Name        string      `json:"name" binding:"required,notblank,max=50"`
	Description string      `json:"description" binding:"required"`
	Year        models.Year `json:"year" binding:"required,min=1,max=4" example:"1"`
}

// CourseResponse represents course information
type CourseResponse struct {
	ID          uuid.UUID   `json:"id" swaggertype:"string" format:"uuid"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Year        models.Year `json:"year" example:"1"`
}

// NewCourseResponse maps a course model to its response
func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{ID: c.ID, Name: c.Name, Description: c.Description, Year: c.Year}
}
