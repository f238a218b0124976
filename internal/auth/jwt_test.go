package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	svc := NewJWT("unit-test-secret")

	token, err := svc.Sign(42, "lebron")
	require.NoError(t, err)

	ident, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), ident.UserID)
	assert.Equal(t, "lebron", ident.Username)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Sign(7, "serena")
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongMethod(t *testing.T) {
	secret := "unit-test-secret"
	claims := jwt.MapClaims{
		"sub":      float64(7),
		"username": "serena",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWT(secret).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRequiresUsernameClaim(t *testing.T) {
	secret := "unit-test-secret"
	claims := jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWT(secret).Verify(token)
	assert.Error(t, err)
}
