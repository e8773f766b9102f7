package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/yigit/libraryhub/internal/app/models"
)

// CreateBookRequest represents book creation data
type CreateBookRequest struct {
	Title           string     `json:"title" binding:"required,notblank,max=100"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Quantity        int        `json:"quantity" binding:"min=0"`
	AuthorName      string     `json:"author_name" binding:"required,notblank"`
	CategoryName    string     `json:"category_name" binding:"required,notblank"`
}

// UpdateBookRequest is a partial update; only supplied fields change
type UpdateBookRequest struct {
	Title           nullable.Nullable[string]    `json:"title,omitempty" swaggertype:"string"`
	PublicationDate nullable.Nullable[time.Time] `json:"publication_date,omitempty" swaggertype:"string" format:"date-time"`
	Quantity        nullable.Nullable[int]       `json:"quantity,omitempty" swaggertype:"integer"`
	AuthorName      nullable.Nullable[string]    `json:"author_name,omitempty" swaggertype:"string"`
	CategoryName    nullable.Nullable[string]    `json:"category_name,omitempty" swaggertype:"string"`
}

// BookResponse represents a book with its author and category names
type BookResponse struct {
	ID              uuid.UUID  `json:"id" swaggertype:"string" format:"uuid"`
	Title           string     `json:"title"`
	PublicationDate *time.Time `json:"publication_date"`
	Quantity        int        `json:"quantity"`
	AuthorName      string     `json:"author_name"`
	CategoryName    string     `json:"category_name"`
}

// NewBookResponse maps a book model to its response
func NewBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationDate: b.PublicationDate,
		Quantity:        b.Quantity,
		AuthorName:      b.AuthorName,
		CategoryName:    b.CategoryName,
	}
}

// IssueBookRequest asks to lend bookTitle to the caller
type IssueBookRequest struct {
	StudentName string `json:"student_name" binding:"required,notblank"`
	BookTitle   string `json:"book_title" binding:"required,notblank"`
}

// ReturnBookRequest asks to close the caller's latest loan of a book
type ReturnBookRequest struct {
	BookTitle string `json:"book_title" binding:"required,notblank"`
}

// IssuedBookResponse represents one loan
type IssuedBookResponse struct {
	ID          uuid.UUID  `json:"id" swaggertype:"string" format:"uuid"`
	StudentName string     `json:"student_name"`
	BookTitle   string     `json:"book_title"`
	IssueDate   time.Time  `json:"issue_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date"`
	IsReturned  bool       `json:"is_returned"`
}

// NewIssuedBookResponse maps a loan model to its response
func NewIssuedBookResponse(l *models.IssuedBook) IssuedBookResponse {
	return IssuedBookResponse{
		ID:          l.ID,
		StudentName: l.StudentName,
		BookTitle:   l.BookTitle,
		IssueDate:   l.IssueDate,
		DueDate:     l.DueDate,
		ReturnDate:  l.ReturnDate,
		IsReturned:  l.IsReturned,
	}
}

// ReturnBookResponse summarises a return and any fine assessed
type ReturnBookResponse struct {
	IssuedBookID uuid.UUID `json:"issued_book_id" swaggertype:"string" format:"uuid"`
	StudentName  string    `json:"student_name"`
	BookTitle    string    `json:"book_title"`
	ReturnDate   time.Time `json:"return_date"`
	IsReturned   bool      `json:"is_returned"`
	Message      string    `json:"message"`
	// FineAmount is the fine with two decimals, null when none was charged
	FineAmount *string `json:"fine_amount" example:"30.00"`
}
