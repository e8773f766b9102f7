package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/app/services"
	"github.com/yigit/libraryhub/internal/middleware"
)

// Lending is what LendingController needs from the lending service
type Lending interface {
	Issue(ctx context.Context, caller *models.User, studentName, bookTitle string) (*models.IssuedBook, error)
	Return(ctx context.Context, caller *models.User, bookTitle string) (*services.ReturnResult, error)
	ListLoans(ctx context.Context, caller *models.User) ([]*models.IssuedBook, error)
}

// LendingController handles issued-book endpoints
type LendingController struct {
	service Lending
	logger  zerolog.Logger
}

// NewLendingController creates a new LendingController
func NewLendingController(service Lending, logger zerolog.Logger) *LendingController {
	return &LendingController{service: service, logger: logger}
}

// IssueBook godoc
// @Summary Issue a book
// @Description Students only, for themselves. Decrements the book's quantity; due date is the loan period from now.
// @Tags issued-books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueBookRequest true "Loan request"
// @Success 201 {object} dto.APIResponse{data=dto.IssuedBookResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 409 {object} dto.ErrorResponse "Book is already issued and not returned"
// @Failure 422 {object} dto.ErrorResponse "No copies available"
// @Router /issued-books [post]
func (c *LendingController) IssueBook(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.IssueBookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	loan, err := c.service.Issue(ctx.Request.Context(), user, req.StudentName, req.BookTitle)
	if err != nil {
		c.logger.Debug().Err(err).Str("bookTitle", req.BookTitle).Msg("Issue rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewIssuedBookResponse(loan), "Book issued successfully"))
}

// ReturnBook godoc
// @Summary Return a book
// @Description Students only. Closes the caller's latest loan of the title (case-insensitive) and charges a fine per late calendar day. Repeating a return is not an error.
// @Tags issued-books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReturnBookRequest true "Return request"
// @Success 200 {object} dto.APIResponse{data=dto.ReturnBookResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Book or loan not found"
// @Router /issued-books/return [post]
func (c *LendingController) ReturnBook(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.ReturnBookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.service.Return(ctx.Request.Context(), user, req.BookTitle)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	body := dto.ReturnBookResponse{
		IssuedBookID: res.Loan.ID,
		StudentName:  res.Loan.StudentName,
		BookTitle:    res.Loan.BookTitle,
		IsReturned:   res.Loan.IsReturned,
		Message:      res.Message,
	}
	if res.Loan.ReturnDate != nil {
		body.ReturnDate = *res.Loan.ReturnDate
	}
	if res.Fine != nil {
		amount := res.Fine.Amount.StringFixed(2)
		body.FineAmount = &amount
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(body, res.Message))
}

// ListIssuedBooks godoc
// @Summary List loans
// @Description Admin only
// @Tags issued-books
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.IssuedBookResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /issued-books [get]
func (c *LendingController) ListIssuedBooks(ctx *gin.Context) {
	user, ok := requireUser(ctx)
	if !ok {
		return
	}

	loans, err := c.service.ListLoans(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.IssuedBookResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, dto.NewIssuedBookResponse(l))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out, ""))
}
