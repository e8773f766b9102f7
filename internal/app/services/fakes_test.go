package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/repositories"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

var errNotFound = fmt.Errorf("fake: %w", apperrors.ErrResourceNotFound)

// fakeLibrary is an in-memory users/books/loans/fines store. InTx restores
// the previous state when fn fails.
type fakeLibrary struct {
	users   map[uuid.UUID]*models.User
	books   map[uuid.UUID]*models.Book
	loans   []*models.IssuedBook
	fines   []*models.Fine
	fineErr error
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		users: map[uuid.UUID]*models.User{},
		books: map[uuid.UUID]*models.Book{},
	}
}

func (f *fakeLibrary) addStudent(name string) *models.User {
	u := &models.User{ID: uuid.New(), Name: name, Email: strings.ToLower(name) + "@uni.edu", Role: models.RoleStudent}
	f.users[u.ID] = u
	return u
}

func (f *fakeLibrary) addBook(title string, qty int) *models.Book {
	b := &models.Book{ID: uuid.New(), Title: title, Quantity: qty}
	f.books[b.ID] = b
	return b
}

type librarySnapshot struct {
	books map[uuid.UUID]models.Book
	loans []models.IssuedBook
	fines int
}

func (f *fakeLibrary) snapshot() librarySnapshot {
	s := librarySnapshot{books: map[uuid.UUID]models.Book{}, fines: len(f.fines)}
	for id, b := range f.books {
		s.books[id] = *b
	}
	for _, l := range f.loans {
		s.loans = append(s.loans, *l)
	}
	return s
}

func (f *fakeLibrary) restore(s librarySnapshot) {
	for id, b := range s.books {
		*f.books[id] = b
	}
	f.loans = f.loans[:0]
	for i := range s.loans {
		l := s.loans[i]
		f.loans = append(f.loans, &l)
	}
	f.fines = f.fines[:s.fines]
}

func (f *fakeLibrary) InTx(ctx context.Context, fn func(ctx context.Context, tx repositories.LendingTx) error) error {
	snap := f.snapshot()
	if err := fn(ctx, f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeLibrary) ListLoans(context.Context) ([]*models.IssuedBook, error) {
	out := make([]*models.IssuedBook, 0, len(f.loans))
	for _, l := range f.loans {
		out = append(out, f.decorate(l))
	}
	return out, nil
}

func (f *fakeLibrary) decorate(l *models.IssuedBook) *models.IssuedBook {
	c := *l
	c.StudentName = f.users[l.StudentID].Name
	c.BookTitle = f.books[l.BookID].Title
	return &c
}

func (f *fakeLibrary) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeLibrary) LockBookByTitle(_ context.Context, title string, foldCase bool) (*models.Book, error) {
	for _, b := range f.books {
		if b.Title == title || (foldCase && strings.EqualFold(b.Title, title)) {
			c := *b
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeLibrary) HasOpenLoan(_ context.Context, studentID, bookID uuid.UUID) (bool, error) {
	for _, l := range f.loans {
		if l.StudentID == studentID && l.BookID == bookID && !l.IsReturned {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLibrary) AdjustBookQuantity(_ context.Context, bookID uuid.UUID, delta int) error {
	b, ok := f.books[bookID]
	if !ok {
		return errNotFound
	}
	if b.Quantity+delta < 0 {
		return fmt.Errorf("fake: %w", apperrors.ErrOutOfStock)
	}
	b.Quantity += delta
	return nil
}

func (f *fakeLibrary) CreateLoan(_ context.Context, loan *models.IssuedBook) error {
	loan.ID = uuid.New()
	c := *loan
	f.loans = append(f.loans, &c)
	return nil
}

func (f *fakeLibrary) LatestLoan(_ context.Context, studentID, bookID uuid.UUID) (*models.IssuedBook, error) {
	var matches []*models.IssuedBook
	for _, l := range f.loans {
		if l.StudentID == studentID && l.BookID == bookID {
			matches = append(matches, l)
		}
	}
	if len(matches) == 0 {
		return nil, errNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].IssueDate.After(matches[j].IssueDate) })
	return f.decorate(matches[0]), nil
}

func (f *fakeLibrary) MarkReturned(_ context.Context, loanID uuid.UUID, at time.Time) error {
	for _, l := range f.loans {
		if l.ID == loanID && !l.IsReturned {
			l.IsReturned = true
			l.ReturnDate = &at
			return nil
		}
	}
	return errNotFound
}

func (f *fakeLibrary) CreateFine(_ context.Context, fine *models.Fine) error {
	if f.fineErr != nil {
		return f.fineErr
	}
	fine.ID = uuid.New()
	f.fines = append(f.fines, fine)
	return nil
}

func (f *fakeLibrary) FineForLoan(_ context.Context, loanID uuid.UUID) (*models.Fine, error) {
	for _, fine := range f.fines {
		if fine.IssuedBookID == loanID {
			return fine, nil
		}
	}
	return nil, errNotFound
}

// fakeUsers implements UserStore
type fakeUsers struct {
	byID map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	for _, other := range f.byID {
		if other.Email == u.Email {
			return fmt.Errorf("fake: %w", apperrors.ErrResourceAlreadyExists)
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) EnrollNumberTaken(_ context.Context, enroll string, exclude uuid.UUID) (bool, error) {
	for id, u := range f.byID {
		if id != exclude && u.EnrollNumber != nil && *u.EnrollNumber == enroll {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) List(context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return errNotFound
	}
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeTokens implements TokenStore
type fakeTokens struct {
	revoked map[string]*models.RevokedToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{revoked: map[string]*models.RevokedToken{}}
}

func (f *fakeTokens) Revoke(_ context.Context, t *models.RevokedToken) error {
	f.revoked[t.TokenID] = t
	return nil
}

func (f *fakeTokens) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := f.revoked[id]
	return ok, nil
}

func (f *fakeTokens) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, t := range f.revoked {
		if t.ExpiresAt != nil && t.ExpiresAt.Before(before) {
			delete(f.revoked, id)
			n++
		}
	}
	return n, nil
}

// fakeAuthors implements AuthorStore
type fakeAuthors struct {
	rows      []*models.Author
	createErr error
	deleteErr error
}

func (f *fakeAuthors) Create(_ context.Context, a *models.Author) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = uuid.New()
	c := *a
	f.rows = append(f.rows, &c)
	return nil
}

func (f *fakeAuthors) List(context.Context) ([]*models.Author, error) { return f.rows, nil }

func (f *fakeAuthors) find(match func(*models.Author) bool) (*models.Author, error) {
	for _, a := range f.rows {
		if match(a) {
			c := *a
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeAuthors) GetByEmail(_ context.Context, email string) (*models.Author, error) {
	return f.find(func(a *models.Author) bool { return a.Email == email })
}

func (f *fakeAuthors) GetByName(_ context.Context, name string) (*models.Author, error) {
	return f.find(func(a *models.Author) bool { return a.Name == name })
}

func (f *fakeAuthors) Update(_ context.Context, a *models.Author) error {
	for i, row := range f.rows {
		if row.ID == a.ID {
			c := *a
			f.rows[i] = &c
			return nil
		}
	}
	return errNotFound
}

func (f *fakeAuthors) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

type fakeCategories struct {
	rows []*models.Category
}

func (f *fakeCategories) Create(_ context.Context, c *models.Category) error {
	c.ID = uuid.New()
	cp := *c
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeCategories) List(context.Context) ([]*models.Category, error) { return f.rows, nil }

func (f *fakeCategories) find(match func(*models.Category) bool) (*models.Category, error) {
	for _, c := range f.rows {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeCategories) GetByName(_ context.Context, name string) (*models.Category, error) {
	return f.find(func(c *models.Category) bool { return c.Name == name })
}

func (f *fakeCategories) FindByNameFold(_ context.Context, name string) (*models.Category, error) {
	return f.find(func(c *models.Category) bool { return strings.EqualFold(c.Name, name) })
}

func (f *fakeCategories) Update(_ context.Context, c *models.Category) error {
	for i, row := range f.rows {
		if row.ID == c.ID {
			cp := *c
			f.rows[i] = &cp
			return nil
		}
	}
	return errNotFound
}

func (f *fakeCategories) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

type fakeCourses struct {
	rows []*models.Course
}

func (f *fakeCourses) Create(_ context.Context, c *models.Course) error {
	c.ID = uuid.New()
	cp := *c
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeCourses) List(_ context.Context, limit, offset int) ([]*models.Course, error) {
	if offset >= len(f.rows) {
		return []*models.Course{}, nil
	}
	end := offset + limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[offset:end], nil
}

func (f *fakeCourses) Count(context.Context) (int64, error) { return int64(len(f.rows)), nil }

func (f *fakeCourses) find(match func(*models.Course) bool) (*models.Course, error) {
	for _, c := range f.rows {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeCourses) GetByName(_ context.Context, name string) (*models.Course, error) {
	return f.find(func(c *models.Course) bool { return c.Name == name })
}

func (f *fakeCourses) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	return f.find(func(c *models.Course) bool { return c.ID == id })
}

func (f *fakeCourses) Update(_ context.Context, c *models.Course) error {
	for i, row := range f.rows {
		if row.ID == c.ID {
			cp := *c
			f.rows[i] = &cp
			return nil
		}
	}
	return errNotFound
}

func (f *fakeCourses) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

type fakeBooks struct {
	rows      []*models.Book
	deleteErr error
}

func (f *fakeBooks) Create(_ context.Context, b *models.Book) error {
	b.ID = uuid.New()
	c := *b
	f.rows = append(f.rows, &c)
	return nil
}

func (f *fakeBooks) List(_ context.Context, limit, offset int) ([]*models.Book, error) {
	if offset >= len(f.rows) {
		return []*models.Book{}, nil
	}
	end := offset + limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[offset:end], nil
}

func (f *fakeBooks) Count(context.Context) (int64, error) { return int64(len(f.rows)), nil }

func (f *fakeBooks) GetByTitle(_ context.Context, title string) (*models.Book, error) {
	for _, b := range f.rows {
		if b.Title == title {
			c := *b
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeBooks) Update(_ context.Context, b *models.Book) error {
	for i, row := range f.rows {
		if row.ID == b.ID {
			c := *b
			f.rows[i] = &c
			return nil
		}
	}
	return errNotFound
}

func (f *fakeBooks) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// recordingNotifier implements email.Notifier
type recordingNotifier struct {
	registrations []string
	logins        []string
	err           error
}

func (n *recordingNotifier) SendRegistrationEmail(_ context.Context, to, _ string) error {
	n.registrations = append(n.registrations, to)
	return n.err
}

func (n *recordingNotifier) SendLoginEmail(_ context.Context, to, _ string) error {
	n.logins = append(n.logins, to)
	return n.err
}

var errBoom = errors.New("boom")
