// Package sessiontest mints bearer tokens for tests.
package sessiontest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const signingKey = "loanos-test-key"

// Token returns an HS256 token carrying the claims the loan service issues.
func Token(t testing.TB, userID int64, isAdmin bool, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
	}
	if isAdmin {
		claims["is_admin"] = true
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// Customer returns a non-admin token valid for an hour.
func Customer(t testing.TB, userID int64) string {
	return Token(t, userID, false, time.Now().Add(time.Hour))
}

// Admin returns an admin token valid for an hour.
func Admin(t testing.TB, userID int64) string {
	return Token(t, userID, true, time.Now().Add(time.Hour))
}
