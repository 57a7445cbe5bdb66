package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akachour/wird/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

const TokenExpirationHours = 24

// SessionService is the authentication gate. It owns the set of live
// sessions: login creates one and issues a JWT carrying its id, logout
// destroys it, and Validate refuses tokens whose session is gone. Sessions
// live in memory only, so a process restart invalidates all tokens.
type SessionService struct {
	accounts     *AccountService
	jwtSecret    string
	jwtAlgorithm string

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewSessionService(accounts *AccountService, jwtSecret, jwtAlgorithm string) *SessionService {
	return &SessionService{
		accounts:     accounts,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		sessions:     make(map[string]*domain.Session),
	}
}

// Login verifies credentials and, on success, creates a session and returns
// it with a signed token. A wrong username or password yields
// ErrInvalidCredentials without revealing which of the two was wrong.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, ok, err := s.accounts.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	session := domain.NewSession(user.Username, user.IsAdmin)

	token, err := s.generateJWT(session)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return token, session, nil
}

// Signup registers a new account. The confirmation password is checked
// before the credential store is touched, and a successful signup does not
// log the user in.
func (s *SessionService) Signup(ctx context.Context, username, password, confirmPassword string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	return s.accounts.CreateUser(ctx, username, password)
}

// Logout destroys a session. Destroying an already-destroyed session is a
// no-op.
func (s *SessionService) Logout(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Validate checks a token's signature and expiry and resolves its live
// session. Tokens for logged-out sessions fail here.
func (s *SessionService) Validate(tokenString string) (*domain.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	s.mu.RLock()
	session, live := s.sessions[claims.ID]
	s.mu.RUnlock()
	if !live {
		return nil, fmt.Errorf("session not found")
	}

	return session, nil
}

// generateJWT generates a JWT token bound to a session
func (s *SessionService) generateJWT(session *domain.Session) (string, error) {
	now := time.Now()
	expiresAt := now.Add(TokenExpirationHours * time.Hour)

	claims := TokenClaims{
		Username: session.Username,
		Admin:    session.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "wird",
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}
