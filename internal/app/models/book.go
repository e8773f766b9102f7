package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalogue entry with an on-hand copy count
type Book struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Quantity        int        `json:"quantity"`
	AuthorID        uuid.UUID  `json:"author_id"`
	CategoryID      uuid.UUID  `json:"category_id"`

	// Denormalised for responses, filled by joins
	AuthorName   string `json:"author_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}
