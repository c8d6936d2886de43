package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"exp": expiresAt.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestExpiry(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, expiresAt)
	assert.Equal(t, expiresAt.Unix(), Expiry(token).Unix())
}

func TestExpiry_OpaqueToken(t *testing.T) {
	assert.True(t, Expiry("not-a-jwt").IsZero())
}

func TestExpiresWithin(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	assert.True(t, ExpiresWithin(token, 2*time.Hour))
	assert.False(t, ExpiresWithin(token, time.Minute))
	assert.False(t, ExpiresWithin("opaque", time.Hour))
}
