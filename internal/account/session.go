package account

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects the bearer token's exp claim without verifying the
// signature; verification is the backend's job, this only avoids issuing
// calls that are certain to fail. Opaque or claimless tokens count as live.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
