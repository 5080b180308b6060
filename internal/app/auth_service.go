package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sentinel-ds/internal/pkg/jwtutil"
)

// AuthService exchanges the shared operator PIN for a short-lived token that
// unlocks write operations.
type AuthService struct {
	pinHash       []byte
	jwtSecret     string
	jwtExpiration time.Duration
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAuthService accepts either a bcrypt hash or a plain PIN; the hash wins
// when both are set. A plain PIN is hashed once at startup.
func NewAuthService(pinHash, pin, jwtSecret string, jwtExpiration time.Duration) (*AuthService, error) {
	s := &AuthService{jwtSecret: jwtSecret, jwtExpiration: jwtExpiration}
	switch {
	case strings.TrimSpace(pinHash) != "":
		s.pinHash = []byte(strings.TrimSpace(pinHash))
	case strings.TrimSpace(pin) != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(pin)), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash operator pin failed: %w", err)
		}
		s.pinHash = hash
	}
	return s, nil
}

func (s *AuthService) Login(pin string) (*AuthResult, error) {
	if len(s.pinHash) == 0 {
		return nil, ErrAuthNotConfigured
	}
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, ErrInvalidInput
	}
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, jwtutil.RoleOperator, jwtutil.RoleOperator)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: time.Now().Add(s.jwtExpiration)}, nil
}

// Authorize checks a bearer token and reports whether it carries the
// operator role.
func (s *AuthService) Authorize(token string) (*jwtutil.Claims, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwtutil.RoleOperator {
		return nil, jwtutil.ErrInvalidToken
	}
	return claims, nil
}
