package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserKey   = "currentUser"
	ContextClaimsKey = "tokenClaims"
)

// TokenResolver turns a bearer token into the user it was issued to
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	resolver TokenResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// authorizationValue reads the Authorization header, falling back to the
// query parameters Swagger UI sometimes uses.
func authorizationValue(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return header
	}
	for _, key := range []string{"authorization", "Authorization", "token"} {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *gin.Context, header string) bool {
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
		errorDetail = errorDetail.WithDetails("Invalid token format")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return false
	}

	user, claims, err := m.resolver.ResolveToken(c.Request.Context(), token)
	if err != nil {
		HandleAPIError(c, err)
		c.Abort()
		return false
	}

	c.Set(ContextUserKey, user)
	c.Set(ContextClaimsKey, claims)
	return true
}

// JWTAuth rejects requests without a valid, unrevoked bearer token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := authorizationValue(c)
		if header == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if m.authenticate(c, header) {
			c.Next()
		}
	}
}

// OptionalAuth resolves the caller when a token is supplied and lets
// anonymous requests through
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := authorizationValue(c)
		if header == "" {
			c.Next()
			return
		}

		if m.authenticate(c, header) {
			c.Next()
		}
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("User information not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if user.Role != requiredRole {
			HandleAPIError(c, apperrors.NewForbiddenError("Only "+requiredRole.String()+"s can perform this action"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user resolved by JWTAuth or OptionalAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentClaims returns the validated token claims
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}
