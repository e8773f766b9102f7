package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
	"github.com/yigit/libraryhub/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc      *AuthService
	users    *fakeUsers
	tokens   *fakeTokens
	courses  *fakeCourses
	notifier *recordingNotifier
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUsers(),
		tokens:   newFakeTokens(),
		courses:  &fakeCourses{},
		notifier: &recordingNotifier{},
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "libraryhub",
	})
	f.svc = NewAuthService(f.users, f.tokens, f.courses, jwtService, f.notifier, zerolog.Nop())
	f.svc.hash = func(pw string) (string, error) {
		b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		return string(b), err
	}
	return f
}

func (f *authFixture) register(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), nil, dto.RegisterRequest{
		Name: name, Email: email, Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	u := f.register(t, "Alice", "alice@uni.edu")
	assert.Equal(t, models.RoleStudent, u.Role)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "password123"))
	assert.Equal(t, []string{"alice@uni.edu"}, f.notifier.registrations)

	_, err := f.svc.Register(ctx, nil, dto.RegisterRequest{Name: "A2", Email: "alice@uni.edu", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	missing := uuid.New()
	_, err = f.svc.Register(ctx, nil, dto.RegisterRequest{Name: "B", Email: "b@uni.edu", Password: "password123", CourseID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRegister_AdminRoleRequiresAdminCaller(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	admin := models.RoleAdmin

	_, err := f.svc.Register(ctx, nil, dto.RegisterRequest{Name: "X", Email: "x@uni.edu", Password: "password123", Role: &admin})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	u, err := f.svc.Register(ctx, &models.User{Role: models.RoleAdmin}, dto.RegisterRequest{
		Name: "X", Email: "x@uni.edu", Password: "password123", Role: &admin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestRegister_DuplicateEnrollNumber(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	enroll := "E-100"

	_, err := f.svc.Register(ctx, nil, dto.RegisterRequest{Name: "A", Email: "a@uni.edu", Password: "password123", EnrollNumber: &enroll})
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, nil, dto.RegisterRequest{Name: "B", Email: "b@uni.edu", Password: "password123", EnrollNumber: &enroll})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRegister_NotificationFailureIsSwallowed(t *testing.T) {
	f := newAuthFixture()
	f.notifier.err = errBoom

	u := f.register(t, "Alice", "alice@uni.edu")
	assert.NotEqual(t, uuid.Nil, u.ID)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.register(t, "Alice", "alice@uni.edu")

	token, err := f.svc.Login(ctx, dto.LoginRequest{Email: "alice@uni.edu", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, []string{"alice@uni.edu"}, f.notifier.logins)

	user, claims, err := f.svc.ResolveToken(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@uni.edu", user.Email)
	assert.Equal(t, token.TokenID, claims.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.register(t, "Alice", "alice@uni.edu")

	token, err := f.svc.Login(ctx, dto.LoginRequest{Email: "alice@uni.edu", Password: "nope-nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, token.AccessToken)

	_, err = f.svc.Login(ctx, dto.LoginRequest{Email: "ghost@uni.edu", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, f.notifier.logins)
}

func TestResolveToken_RevokedAndOrphaned(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.register(t, "Alice", "alice@uni.edu")

	token, err := f.svc.Login(ctx, dto.LoginRequest{Email: "alice@uni.edu", Password: "password123"})
	require.NoError(t, err)
	_, claims, err := f.svc.ResolveToken(ctx, token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, u, claims))
	_, _, err = f.svc.ResolveToken(ctx, token.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	require.NotNil(t, f.tokens.revoked[claims.ID].ExpiresAt)

	second, err := f.svc.Login(ctx, dto.LoginRequest{Email: "alice@uni.edu", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, u.ID))
	_, _, err = f.svc.ResolveToken(ctx, second.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenSubjectNotFound)

	_, _, err = f.svc.ResolveToken(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPurgeExpiredRevocations(t *testing.T) {
	f := newAuthFixture()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	f.tokens.revoked["old"] = &models.RevokedToken{TokenID: "old", ExpiresAt: &past}
	f.tokens.revoked["live"] = &models.RevokedToken{TokenID: "live", ExpiresAt: &future}
	f.tokens.revoked["forever"] = &models.RevokedToken{TokenID: "forever"}

	n, err := f.svc.PurgeExpiredRevocations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, f.tokens.revoked, 2)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.register(t, "Alice", "alice@uni.edu")
	other := f.register(t, "Bob", "bob@uni.edu")
	enroll := "E-7"
	other.EnrollNumber = &enroll
	require.NoError(t, f.users.Update(ctx, other))

	updated, err := f.svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{
		Name:     nullable.NewNullableWithValue("Alice Smith"),
		Password: nullable.NewNullableWithValue("newpassword1"),
		Gender:   nullable.NewNullableWithValue(models.GenderFemale),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "alice@uni.edu", updated.Email)
	assert.True(t, auth.CheckPassword(updated.PasswordHash, "newpassword1"))
	require.NotNil(t, updated.Gender)
	assert.Equal(t, models.GenderFemale, *updated.Gender)

	cleared, err := f.svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{Gender: nullable.NewNullNullable[models.Gender]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Gender)
	assert.Equal(t, "Alice Smith", cleared.Name)

	_, err = f.svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{EnrollNumber: nullable.NewNullableWithValue("E-7")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{Password: nullable.NewNullableWithValue("short")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{Name: nullable.NewNullNullable[string]()})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.register(t, "Alice", "alice@uni.edu")

	err := f.svc.DeleteProfile(ctx, &models.User{ID: uuid.New(), Role: models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.svc.DeleteProfile(ctx, u))
	_, err = f.users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestListUsers(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	u := f.register(t, "Alice", "alice@uni.edu")

	_, err := f.svc.ListUsers(ctx, u)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	users, err := f.svc.ListUsers(ctx, &models.User{Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
