package models

import (
	"time"

	"github.com/google/uuid"
)

// Author writes books; email is the natural key
type Author struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Nationality *string   `json:"nationality,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
