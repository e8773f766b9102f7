package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/libraryhub/internal/app/auth"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/auth"
	"github.com/yigit/libraryhub/internal/pkg/email"
	"github.com/yigit/libraryhub/internal/pkg/validation"
)

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EnrollNumberTaken(ctx context.Context, enrollNumber string, exclude uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenStore records revoked access tokens
type TokenStore interface {
	Revoke(ctx context.Context, t *models.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// CourseFinder resolves course references on registration
type CourseFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

// AuthService handles accounts, credentials and tokens
type AuthService struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	courseRepo CourseFinder
	jwtService *auth.JWTService
	notifier   email.Notifier
	logger     zerolog.Logger
	hash       func(string) (string, error)
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	courseRepo CourseFinder,
	jwtService *auth.JWTService,
	notifier email.Notifier,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		courseRepo: courseRepo,
		jwtService: jwtService,
		notifier:   notifier,
		logger:     logger,
		hash:       auth.HashPassword,
		now:        time.Now,
	}
}

// Register creates an account. Only an admin caller may create another admin.
func (s *AuthService) Register(ctx context.Context, caller *models.User, req dto.RegisterRequest) (*models.User, error) {
	role := models.RoleStudent
	if req.Role != nil {
		role = *req.Role
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be admin or student")
	}
	if role == models.RoleAdmin && !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can register admin accounts")
	}
	if req.Gender != nil && !req.Gender.Valid() {
		return nil, apperrors.NewValidationError("gender must be Male, Female or Other")
	}

	userEmail := strings.TrimSpace(req.Email)
	exists, err := s.userRepo.EmailExists(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Email already registered")
	}

	if req.EnrollNumber != nil {
		taken, err := s.userRepo.EnrollNumberTaken(ctx, *req.EnrollNumber, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("error checking enroll number: %w", err)
		}
		if taken {
			return nil, apperrors.NewConflictError("Enroll number already in use")
		}
	}

	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, storeError(err, "Course")
		}
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        userEmail,
		PasswordHash: hashed,
		Role:         role,
		EnrollNumber: req.EnrollNumber,
		MobileNumber: req.MobileNumber,
		Gender:       req.Gender,
		CourseID:     req.CourseID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeError(err, "User")
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", role.String()).Msg("User registered")
	if err := s.notifier.SendRegistrationEmail(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send registration email")
	}

	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (auth.IssuedToken, error) {
	invalid := apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return auth.IssuedToken{}, invalid
		}
		return auth.IssuedToken{}, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Str("email", user.Email).Msg("Login rejected: password mismatch")
		return auth.IssuedToken{}, invalid
	}

	token, err := s.jwtService.GenerateToken(user.Email, user.Role.String())
	if err != nil {
		return auth.IssuedToken{}, err
	}

	if err := s.notifier.SendLoginEmail(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send login email")
	}

	return token, nil
}

// ResolveToken validates a bearer token and loads its subject
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking token revocation: %w", err)
	}
	if revoked {
		return nil, nil, apperrors.ErrTokenRevoked
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil, apperrors.ErrTokenSubjectNotFound
		}
		return nil, nil, fmt.Errorf("error loading token subject: %w", err)
	}

	return user, claims, nil
}

// Logout revokes the presented token
func (s *AuthService) Logout(ctx context.Context, caller *models.User, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrTokenInvalid
	}

	var expiresAt *time.Time
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		expiresAt = &t
	}

	err := s.tokenRepo.Revoke(ctx, &models.RevokedToken{
		TokenID:   claims.ID,
		UserEmail: caller.Email,
		ExpiresAt: expiresAt,
		RevokedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// PurgeExpiredRevocations drops revocation records of tokens that can no longer validate
func (s *AuthService) PurgeExpiredRevocations(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, s.now())
}

// UpdateProfile applies the supplied fields to the caller's own account
func (s *AuthService) UpdateProfile(ctx context.Context, caller *models.User, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, storeError(err, "User")
	}

	if req.Name.IsSpecified() {
		name, err := req.Name.Get()
		name = strings.TrimSpace(name)
		if err != nil || name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		user.Name = name
	}

	if req.Password.IsSpecified() {
		password, err := req.Password.Get()
		if err != nil || len(password) < validation.PasswordMinLength || len(password) > validation.PasswordMaxLength {
			return nil, apperrors.NewValidationError(fmt.Sprintf(
				"password must be between %d and %d characters",
				validation.PasswordMinLength, validation.PasswordMaxLength))
		}
		if user.PasswordHash, err = s.hash(password); err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	if req.EnrollNumber.IsSpecified() {
		enroll := valueOrNil(req.EnrollNumber)
		if enroll != nil {
			taken, err := s.userRepo.EnrollNumberTaken(ctx, *enroll, user.ID)
			if err != nil {
				return nil, fmt.Errorf("error checking enroll number: %w", err)
			}
			if taken {
				return nil, apperrors.NewConflictError("Enroll number already in use")
			}
		}
		user.EnrollNumber = enroll
	}

	if req.MobileNumber.IsSpecified() {
		user.MobileNumber = valueOrNil(req.MobileNumber)
	}

	if req.Gender.IsSpecified() {
		gender := valueOrNil(req.Gender)
		if gender != nil && !gender.Valid() {
			return nil, apperrors.NewValidationError("gender must be Male, Female or Other")
		}
		user.Gender = gender
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storeError(err, "User")
	}
	return user, nil
}

// DeleteProfile removes the caller's own student account
func (s *AuthService) DeleteProfile(ctx context.Context, caller *models.User) error {
	if err := authz.Authorize(caller, authz.DeleteOwnProfile); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, caller.ID); err != nil {
		if errors.Is(err, apperrors.ErrResourceInUse) {
			return apperrors.NewConflictError("Account has loan history and cannot be deleted")
		}
		return storeError(err, "User")
	}

	s.logger.Info().Str("userID", caller.ID.String()).Msg("Student account deleted")
	return nil
}

// ListUsers returns every account
func (s *AuthService) ListUsers(ctx context.Context, caller *models.User) ([]*models.User, error) {
	if err := authz.Authorize(caller, authz.ListUsers); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}
