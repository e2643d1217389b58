package account

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	live := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	if TokenExpired(live, now) {
		t.Fatalf("token expiring in an hour reported expired")
	}

	stale := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})
	if !TokenExpired(stale, now) {
		t.Fatalf("token expired an hour ago reported live")
	}
}

func TestTokenWithoutExpCountsAsLive(t *testing.T) {
	t.Parallel()
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})
	if TokenExpired(token, time.Now()) {
		t.Fatalf("claimless token reported expired")
	}
}

func TestOpaqueTokenCountsAsLive(t *testing.T) {
	t.Parallel()
	if TokenExpired("not-a-jwt", time.Now()) {
		t.Fatalf("opaque token reported expired")
	}
}
