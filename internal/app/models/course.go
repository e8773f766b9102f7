package models

import "github.com/google/uuid"

// Course is a programme students enrol in
type Course struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Year        Year      `json:"year"`
}
