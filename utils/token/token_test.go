package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateToken(42, "test@example.com", testSecret, 30*time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestExpiredToken(t *testing.T) {
	tokenString, err := GenerateToken(42, "test@example.com", testSecret, -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedToken(t *testing.T) {
	tokenString, err := GenerateToken(42, "test@example.com", []byte("other-secret"), 30*time.Minute)
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedToken(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMissingClaims(t *testing.T) {
	// A structurally valid token without user_id or email must be rejected.
	claims := jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().UTC().Add(30 * time.Minute)),
	}
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := raw.SignedString(testSecret)
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
