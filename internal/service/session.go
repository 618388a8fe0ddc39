package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// Session is the in-memory result of a successful authentication. Token is
// empty for purely local sessions.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// UserContext converts the session into the explicit scoping value every
// repository and service call takes.
func (s *Session) UserContext() types.UserContext {
	return types.UserContext{UserID: s.UserID, Token: s.Token}
}

// newSession builds a session for an account, extracting the expiry claim
// from an origin-issued token when one is present. The token is parsed
// unverified: the signing key lives at the origin and the expiry is only a
// hint for the UI.
func newSession(account *models.Account, token string) *Session {
	session := &Session{UserID: account.UserID, Token: token}
	if token == "" {
		return session
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return session
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}
	return session
}
