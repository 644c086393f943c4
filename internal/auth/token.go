// Package auth inspects the configured API token. The backend verifies
// signatures; this side only peeks at the claims to warn about an expired
// session before the user sits through a doomed import batch.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the token's expiration time. ok is false for opaque
// (non-JWT) tokens and for JWTs without an exp claim; such tokens are
// simply not checkable client-side.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Expired reports whether the token is a JWT that expired before now.
func Expired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	return ok && exp.Before(now)
}
