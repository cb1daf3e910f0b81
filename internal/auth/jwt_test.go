package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret-key-for-testing-purposes", 24*time.Hour)
}

func TestJWTService_GenerateSessionToken(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateSessionToken("sess-123", RoleShopper)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
	assert.Equal(t, 24*time.Hour, service.SessionExpiry())
}

func TestJWTService_ValidateSessionToken_RoundTrip(t *testing.T) {
	service := newTestJWTService()

	for _, role := range []string{RoleShopper, RoleAdmin} {
		t.Run(role, func(t *testing.T) {
			token, _, err := service.GenerateSessionToken("sess-456", role)
			require.NoError(t, err)

			claims, err := service.ValidateSessionToken(token)

			require.NoError(t, err)
			assert.Equal(t, "sess-456", claims.SessionID)
			assert.Equal(t, role, claims.Role)
			assert.Equal(t, "sess-456", claims.Subject)
		})
	}
}

func TestJWTService_ValidateSessionToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret", time.Millisecond)

	token, _, err := service.GenerateSessionToken("sess-123", RoleShopper)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := service.ValidateSessionToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateSessionToken_Invalid(t *testing.T) {
	service := newTestJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"malformed JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateSessionToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateSessionToken_WrongSignature(t *testing.T) {
	issuer := NewJWTService("secret-key-1", time.Hour)
	verifier := NewJWTService("secret-key-2", time.Hour)

	token, _, err := issuer.GenerateSessionToken("sess-123", RoleAdmin)
	require.NoError(t, err)

	claims, err := verifier.ValidateSessionToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateSessionToken_NoneAlgorithm(t *testing.T) {
	service := newTestJWTService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{SessionID: "sess-123", Role: RoleAdmin})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.ValidateSessionToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateSessionToken_MissingSession(t *testing.T) {
	service := newTestJWTService()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte("test-secret-key-for-testing-purposes"))
	require.NoError(t, err)

	_, err = service.ValidateSessionToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	service := newTestJWTService()

	a, _, err := service.GenerateSessionToken("sess-1", RoleShopper)
	require.NoError(t, err)
	b, _, err := service.GenerateSessionToken("sess-1", RoleShopper)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestNewSessionID(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
	assert.Len(t, NewSessionID(), 36)
}
