package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shop-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:           "2b1c7c3e-4a55-4d33-9a7e-1f0c5e7b9a10",
		Firstname:    "John",
		Lastname:     "Doe",
		Email:        "john@example.com",
		PasswordHash: "$2a$04$somethingthatmustneverleak",
	}
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", 5*24*time.Hour)
	user := testUser()

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(5*24*time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "John", claims.Firstname)
	assert.Equal(t, "Doe", claims.Lastname)
	assert.Nil(t, claims.Role)
}

func TestTokenManager_PayloadCarriesNoPasswordHash(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "$2a$")
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ID: "x"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", time.Hour).ParseToken(token)
	assert.Error(t, err)
}
