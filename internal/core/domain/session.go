package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-connection authentication state. It is created on
// login, destroyed on logout or process exit, and never persisted. The ID
// doubles as the JWT token id (jti) so a token can be revoked by dropping
// its session.
type Session struct {
	ID            string
	Username      string
	IsAdmin       bool
	Authenticated bool
	CreatedAt     time.Time
}

func NewSession(username string, isAdmin bool) *Session {
	return &Session{
		ID:            uuid.New().String(),
		Username:      username,
		IsAdmin:       isAdmin,
		Authenticated: true,
		CreatedAt:     time.Now(),
	}
}
