package repositories

import (
	"github.com/yigit/libraryhub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	AuthorRepository   *AuthorRepository
	CategoryRepository *CategoryRepository
	CourseRepository   *CourseRepository
	BookRepository     *BookRepository
	LendingRepository  *LendingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(pool),
		TokenRepository:    NewTokenRepository(pool),
		AuthorRepository:   NewAuthorRepository(pool),
		CategoryRepository: NewCategoryRepository(pool),
		CourseRepository:   NewCourseRepository(pool),
		BookRepository:     NewBookRepository(pool),
		LendingRepository:  NewLendingRepository(pool),
	}
}
