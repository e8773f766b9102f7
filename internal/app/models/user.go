package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a library account. Student-only fields are nil for admins.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	EnrollNumber *string    `json:"enroll_number,omitempty"`
	MobileNumber *string    `json:"mobile_number,omitempty"`
	Gender       *Gender    `json:"gender,omitempty"`
	CourseID     *uuid.UUID `json:"course_id,omitempty"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsStudent reports whether the user holds the student role
func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}
