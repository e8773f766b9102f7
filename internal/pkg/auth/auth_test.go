package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

func TestPasswordHashing(t *testing.T) {
	first, err := hashWithCost("s3cretpass", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := hashWithCost("s3cretpass", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salted hashes should differ")
	assert.True(t, CheckPassword(first, "s3cretpass"))
	assert.True(t, CheckPassword(second, "s3cretpass"))
	assert.False(t, CheckPassword(first, "wrongpass"))
	assert.False(t, CheckPassword("not-a-hash", "s3cretpass"))
}

func newTestService(exp time.Duration, now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{SecretKey: "unit-test-secret", AccessTokenExp: exp, TokenIssuer: "libraryhub"})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(time.Hour, now)

	issued, err := s.GenerateToken("student@uni.edu", "student")
	require.NoError(t, err)
	require.NotNil(t, issued.ExpiresAt)
	assert.Equal(t, int64(3600), issued.ExpiresIn(now))
	assert.NotEmpty(t, issued.TokenID)

	claims, err := s.ValidateToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student@uni.edu", claims.Subject)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, issued.TokenID, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(time.Hour, now)

	issued, err := s.GenerateToken("student@uni.edu", "student")
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.ValidateToken(issued.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestGenerateToken_NoExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(0, now)

	issued, err := s.GenerateToken("admin@uni.edu", "admin")
	require.NoError(t, err)
	assert.Nil(t, issued.ExpiresAt)
	assert.Zero(t, issued.ExpiresIn(now))

	s.now = func() time.Time { return now.AddDate(5, 0, 0) }
	claims, err := s.ValidateToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestValidateToken_Rejects(t *testing.T) {
	now := time.Now()
	s := newTestService(time.Hour, now)
	other := newTestService(time.Hour, now)
	other.config.SecretKey = "another-secret"

	foreign, err := other.GenerateToken("x@uni.edu", "student")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x@uni.edu", "jti": "1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "a.b.c",
		"wrong secret": foreign.AccessToken,
		"alg none":     unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.ValidateToken(token)
			assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "abc.def.ghi", want: "abc.def.ghi"},
		{header: "", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr {
			assert.Error(t, err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}
