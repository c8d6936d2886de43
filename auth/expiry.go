package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry inspects a bearer token's exp claim without verifying the signature.
// It is advisory only, used for logging imminent expiry; the refresh protocol
// is driven by server responses, never by this value. The zero time is
// returned for opaque tokens and tokens without an exp claim.
func Expiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}
	}
	return expiresAt.Time
}

// ExpiresWithin reports whether the token carries an exp claim falling before
// now+window.
func ExpiresWithin(token string, window time.Duration) bool {
	expiry := Expiry(token)
	if expiry.IsZero() {
		return false
	}
	return expiry.Before(time.Now().Add(window))
}
