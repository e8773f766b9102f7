package auth

import (
	"fmt"

	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

// Permission is an action gated by role
type Permission int

const (
	// ManageCatalog covers create/update/delete of authors, categories, courses and books
	ManageCatalog Permission = iota + 1
	// ViewCatalogEntry covers admin lookups of a single author or category
	ViewCatalogEntry
	ListUsers
	ListLoans
	// BorrowBooks covers issuing and returning books
	BorrowBooks
	DeleteOwnProfile
)

func (p Permission) String() string {
	switch p {
	case ManageCatalog:
		return "manage catalog"
	case ViewCatalogEntry:
		return "view catalog entry"
	case ListUsers:
		return "list users"
	case ListLoans:
		return "list loans"
	case BorrowBooks:
		return "borrow books"
	case DeleteOwnProfile:
		return "delete own profile"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// Allows reports whether role grants perm
func Allows(role models.Role, perm Permission) bool {
	switch role {
	case models.RoleAdmin:
		switch perm {
		case ManageCatalog, ViewCatalogEntry, ListUsers, ListLoans:
			return true
		}
	case models.RoleStudent:
		switch perm {
		case BorrowBooks, DeleteOwnProfile:
			return true
		}
	}
	return false
}

// Authorize returns a forbidden error unless u may perform perm
func Authorize(u *models.User, perm Permission) error {
	if u == nil {
		return apperrors.NewForbiddenError("authentication required")
	}
	if !Allows(u.Role, perm) {
		return apperrors.NewForbiddenError(forbiddenMessage(perm))
	}
	return nil
}

func forbiddenMessage(perm Permission) string {
	switch perm {
	case ManageCatalog, ViewCatalogEntry, ListUsers, ListLoans:
		return "Only admins can " + perm.String()
	case BorrowBooks, DeleteOwnProfile:
		return "Only students can " + perm.String()
	default:
		return "You don't have permission for this action"
	}
}
