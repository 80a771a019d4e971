package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "admin", 4, secret, 60)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, 4, claims.TokenVersion)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	a, err := GenerateAccessToken(1, "admin", "admin", 0, secret, 60)
	require.NoError(t, err)
	b, err := GenerateAccessToken(1, "admin", "admin", 0, secret, 60)
	require.NoError(t, err)

	ca, err := ValidateAccessToken(a, secret)
	require.NoError(t, err)
	cb, err := ValidateAccessToken(b, secret)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "admin", 0, secret, 60)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "admin", 0, secret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, secret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, secret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", secret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
