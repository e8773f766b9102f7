package models

import "github.com/google/uuid"

// Category groups books; name is the natural key
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}
