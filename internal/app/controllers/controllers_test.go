package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/app/services"
	"github.com/yigit/libraryhub/internal/middleware"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/auth"
	"github.com/yigit/libraryhub/internal/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterWithGin(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var (
	admin   = &models.User{ID: uuid.New(), Name: "Admin", Email: "admin@lib.io", Role: models.RoleAdmin}
	student = &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@lib.io", Role: models.RoleStudent}
)

// as stands in for JWTAuth by placing u in the request context
func as(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(middleware.ContextUserKey, u)
			c.Set(middleware.ContextClaimsKey, &auth.Claims{Email: u.Email, Role: u.Role.String()})
		}
		c.Next()
	}
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

type stubAccounts struct {
	registeredBy *models.User
	loginErr     error
}

func (s *stubAccounts) Register(_ context.Context, caller *models.User, req dto.RegisterRequest) (*models.User, error) {
	s.registeredBy = caller
	return &models.User{ID: uuid.New(), Name: req.Name, Email: req.Email, Role: models.RoleStudent}, nil
}

func (s *stubAccounts) Login(context.Context, dto.LoginRequest) (auth.IssuedToken, error) {
	if s.loginErr != nil {
		return auth.IssuedToken{}, s.loginErr
	}
	exp := time.Now().Add(time.Hour)
	return auth.IssuedToken{AccessToken: "a.b.c", TokenID: "jti", ExpiresAt: &exp}, nil
}

func (s *stubAccounts) Logout(context.Context, *models.User, *auth.Claims) error { return nil }

func (s *stubAccounts) UpdateProfile(_ context.Context, caller *models.User, _ dto.UpdateProfileRequest) (*models.User, error) {
	return caller, nil
}

func (s *stubAccounts) DeleteProfile(context.Context, *models.User) error { return nil }

func (s *stubAccounts) ListUsers(_ context.Context, caller *models.User) ([]*models.User, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can list users")
	}
	return []*models.User{admin, student}, nil
}

func TestUserController(t *testing.T) {
	svc := &stubAccounts{}
	c := NewUserController(svc, zerolog.Nop())

	r := gin.New()
	r.POST("/anon/register", as(nil), c.Register)
	r.POST("/admin/register", as(admin), c.Register)
	r.POST("/login", c.Login)
	r.POST("/logout", as(nil), c.Logout)
	r.GET("/student/all", as(student), c.ListUsers)
	r.GET("/admin/all", as(admin), c.ListUsers)

	reg := map[string]any{"name": "Bob", "email": "bob@lib.io", "password": "longenough"}

	t.Run("anonymous register", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/anon/register", reg)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.Nil(t, svc.registeredBy)
	})

	t.Run("admin caller is passed through", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/admin/register", reg)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Same(t, admin, svc.registeredBy)
	})

	t.Run("register validation", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/anon/register", map[string]any{"name": " ", "email": "nope", "password": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
	})

	t.Run("login", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/login", map[string]any{"email": "bob@lib.io", "password": "longenough"})
		require.Equal(t, http.StatusOK, w.Code)
		var tok dto.TokenResponse
		require.NoError(t, json.Unmarshal(env.Data, &tok))
		assert.Equal(t, "a.b.c", tok.AccessToken)
		assert.Equal(t, "bearer", tok.TokenType)
		assert.InDelta(t, 3600, tok.ExpiresIn, 5)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc.loginErr = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
		defer func() { svc.loginErr = nil }()

		w, env := do(t, r, http.MethodPost, "/login", map[string]any{"email": "bob@lib.io", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", env.Error.Message)
	})

	t.Run("logout needs a caller", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/logout", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("list users", func(t *testing.T) {
		w, _ := do(t, r, http.MethodGet, "/student/all", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w, env := do(t, r, http.MethodGet, "/admin/all", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var users []dto.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &users))
		assert.Len(t, users, 2)
	})
}

type stubBooks struct {
	books []*models.Book
}

func (s *stubBooks) Create(_ context.Context, _ *models.User, req dto.CreateBookRequest) (*models.Book, error) {
	return &models.Book{ID: uuid.New(), Title: req.Title, Quantity: req.Quantity, AuthorName: req.AuthorName, CategoryName: req.CategoryName}, nil
}

func (s *stubBooks) List(_ context.Context, limit, offset int) ([]*models.Book, int64, error) {
	end := offset + limit
	if end > len(s.books) {
		end = len(s.books)
	}
	if offset > end {
		offset = end
	}
	return s.books[offset:end], int64(len(s.books)), nil
}

func (s *stubBooks) GetByTitle(_ context.Context, title string) (*models.Book, error) {
	for _, b := range s.books {
		if b.Title == title {
			return b, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("Book not found")
}

func (s *stubBooks) Update(_ context.Context, _ *models.User, title string, req dto.UpdateBookRequest) (*models.Book, error) {
	b, err := s.GetByTitle(context.Background(), title)
	if err != nil {
		return nil, err
	}
	if q, err := req.Quantity.Get(); err == nil {
		b.Quantity = q
	}
	return b, nil
}

func (s *stubBooks) Delete(context.Context, *models.User, string) error {
	return apperrors.NewConflictError("Book is still referenced by other records")
}

func TestBookController(t *testing.T) {
	svc := &stubBooks{books: []*models.Book{
		{ID: uuid.New(), Title: "Dune", Quantity: 2},
		{ID: uuid.New(), Title: "Emma", Quantity: 1},
		{ID: uuid.New(), Title: "Ulysses", Quantity: 0},
	}}
	c := NewBookController(svc)

	r := gin.New()
	r.GET("/books", c.ListBooks)
	r.GET("/books/:title", as(student), c.GetBook)
	r.PUT("/books/:title", as(admin), c.UpdateBook)
	r.DELETE("/books/:title", as(admin), c.DeleteBook)

	t.Run("paginated list", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/books?limit=2&offset=0", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Items      []dto.BookResponse `json:"items"`
			Pagination dto.PaginationInfo `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(3), page.Pagination.TotalItems)
		assert.True(t, page.Pagination.HasMore)
	})

	for _, q := range []string{"limit=0", "limit=101", "offset=-1", "limit=abc"} {
		t.Run("rejects "+q, func(t *testing.T) {
			w, _ := do(t, r, http.MethodGet, "/books?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("get missing", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/books/Nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", env.Error.Message)
	})

	t.Run("partial update", func(t *testing.T) {
		w, env := do(t, r, http.MethodPut, "/books/Emma", map[string]any{"quantity": 4})
		require.Equal(t, http.StatusOK, w.Code)
		var b dto.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, 4, b.Quantity)
	})

	t.Run("delete with loans", func(t *testing.T) {
		w, _ := do(t, r, http.MethodDelete, "/books/Dune", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

type stubLending struct {
	issueErr error
	result   *services.ReturnResult
}

func (s *stubLending) Issue(_ context.Context, caller *models.User, studentName, bookTitle string) (*models.IssuedBook, error) {
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	now := time.Now()
	return &models.IssuedBook{
		ID: uuid.New(), StudentID: caller.ID, StudentName: studentName, BookTitle: bookTitle,
		IssueDate: now, DueDate: now.AddDate(0, 0, 10),
	}, nil
}

func (s *stubLending) Return(context.Context, *models.User, string) (*services.ReturnResult, error) {
	return s.result, nil
}

func (s *stubLending) ListLoans(context.Context, *models.User) ([]*models.IssuedBook, error) {
	return []*models.IssuedBook{{ID: uuid.New(), StudentName: "Alice", BookTitle: "Dune"}}, nil
}

func TestLendingController(t *testing.T) {
	svc := &stubLending{}
	c := NewLendingController(svc, zerolog.Nop())

	r := gin.New()
	r.POST("/issued-books", as(student), c.IssueBook)
	r.POST("/issued-books/return", as(student), c.ReturnBook)
	r.GET("/issued-books", as(admin), c.ListIssuedBooks)

	t.Run("issue", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/issued-books", map[string]any{"student_name": "Alice", "book_title": "Dune"})
		require.Equal(t, http.StatusCreated, w.Code)
		var loan dto.IssuedBookResponse
		require.NoError(t, json.Unmarshal(env.Data, &loan))
		assert.Equal(t, "Dune", loan.BookTitle)
		assert.False(t, loan.IsReturned)
	})

	t.Run("issue requires title", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/issued-books", map[string]any{"student_name": "Alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	statuses := map[string]struct {
		err  error
		code int
	}{
		"forbidden":    {apperrors.NewForbiddenError("Students can only issue books for themselves"), http.StatusForbidden},
		"open loan":    {apperrors.NewConflictError("Book is already issued and not returned"), http.StatusConflict},
		"out of stock": {apperrors.NewOutOfStockError("No copies of the book are available to issue"), http.StatusUnprocessableEntity},
	}
	for name, tc := range statuses {
		t.Run(name, func(t *testing.T) {
			svc.issueErr = tc.err
			defer func() { svc.issueErr = nil }()

			w, env := do(t, r, http.MethodPost, "/issued-books", map[string]any{"student_name": "Alice", "book_title": "Dune"})
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, apperrors.MessageOf(tc.err, ""), env.Error.Message)
		})
	}

	returned := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	loan := &models.IssuedBook{ID: uuid.New(), StudentName: "Alice", BookTitle: "Dune", IsReturned: true, ReturnDate: &returned}

	t.Run("late return carries fine", func(t *testing.T) {
		svc.result = &services.ReturnResult{
			Loan:    loan,
			Fine:    &models.Fine{Amount: decimal.NewFromInt(30)},
			Message: "Book returned successfully",
		}
		w, env := do(t, r, http.MethodPost, "/issued-books/return", map[string]any{"book_title": "dune"})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.Equal(t, "30.00", body["fine_amount"])
		assert.Equal(t, true, body["is_returned"])
		assert.Equal(t, "Book returned successfully", env.Message)
	})

	t.Run("on time return has null fine", func(t *testing.T) {
		svc.result = &services.ReturnResult{Loan: loan, Message: "Book returned successfully"}
		w, env := do(t, r, http.MethodPost, "/issued-books/return", map[string]any{"book_title": "Dune"})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &body))
		v, present := body["fine_amount"]
		assert.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("list", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/issued-books", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var loans []dto.IssuedBookResponse
		require.NoError(t, json.Unmarshal(env.Data, &loans))
		assert.Len(t, loans, 1)
	})
}

type stubCourses struct{}

func (stubCourses) Create(_ context.Context, caller *models.User, req dto.CourseRequest) (*models.Course, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can manage the catalog")
	}
	return &models.Course{ID: uuid.New(), Name: req.Name}, nil
}

func (stubCourses) List(context.Context, int, int) ([]*models.Course, int64, error) {
	return []*models.Course{}, 0, nil
}

func (stubCourses) GetByName(_ context.Context, name string) (*models.Course, error) {
	return &models.Course{ID: uuid.New(), Name: name}, nil
}

func (stubCourses) Update(_ context.Context, _ *models.User, name string, _ dto.CourseRequest) (*models.Course, error) {
	return &models.Course{ID: uuid.New(), Name: name}, nil
}

func (stubCourses) Delete(context.Context, *models.User, string) error { return nil }

func TestCourseController(t *testing.T) {
	c := NewCourseController(stubCourses{})

	r := gin.New()
	r.GET("/course", c.ListCourses)
	r.POST("/student/course", as(student), c.CreateCourse)
	r.DELETE("/course/:name", as(admin), c.DeleteCourse)

	w, env := do(t, r, http.MethodGet, "/course", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items      []dto.CourseResponse `json:"items"`
		Pagination dto.PaginationInfo   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.Pagination.Limit)
	assert.False(t, page.Pagination.HasMore)

	w, env = do(t, r, http.MethodPost, "/student/course", map[string]any{"name": "BSc CS", "description": "Computing", "year": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only admins can manage the catalog", env.Error.Message)

	w, _ = do(t, r, http.MethodPost, "/student/course", map[string]any{"name": "BSc CS", "description": "Computing", "year": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodDelete, "/course/BSc%20CS", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Course (BSc CS) deleted successfully", env.Message)
}
