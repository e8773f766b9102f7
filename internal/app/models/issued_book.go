package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IssuedBook is one loan of one copy to one student
type IssuedBook struct {
	ID         uuid.UUID  `json:"id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	IsReturned bool       `json:"is_returned"`
	StudentID  uuid.UUID  `json:"student_id"`
	BookID     uuid.UUID  `json:"book_id"`

	StudentName string `json:"student_name,omitempty"`
	BookTitle   string `json:"book_title,omitempty"`
}

// Fine is the late-return penalty for a loan, at most one per loan
type Fine struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	IssuedBookID uuid.UUID       `json:"issued_book_id"`
}

// RevokedToken records a logged-out access token by its jti
type RevokedToken struct {
	TokenID   string     `json:"token_id"`
	UserEmail string     `json:"user_email"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	RevokedAt time.Time  `json:"revoked_at"`
}
