package session

import (
	"fmt"
	"time"

	apperrors "loanos-client/internal/common/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer token fields the client reads. The token is decoded
// without signature verification: it drives display and routing only, the
// loan service verifies it on every request.
type Claims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Decode extracts the session claims from a token. A token without a user id
// or an exp claim is rejected.
func Decode(token string) (Session, error) {
	var claims Claims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Session{}, apperrors.NewSessionInvalidError(fmt.Sprintf("decode: %v", err))
	}
	if claims.UserID == 0 {
		return Session{}, apperrors.NewSessionInvalidError("missing user_id claim")
	}
	if claims.ExpiresAt == nil {
		return Session{}, apperrors.NewSessionInvalidError("missing exp claim")
	}
	return Session{
		UserID:    claims.UserID,
		IsAdmin:   claims.IsAdmin,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// TTL returns how long a token remains valid, zero when it cannot be decoded
// or has already expired. Used to expire shared token entries.
func TTL(token string) time.Duration {
	s, err := Decode(token)
	if err != nil {
		return 0
	}
	if d := time.Until(s.ExpiresAt); d > 0 {
		return d
	}
	return 0
}
