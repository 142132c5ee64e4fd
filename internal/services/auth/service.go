package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotConfigured is returned when no admin password has been set
var ErrNotConfigured = errors.New("admin password not configured")

// Service verifies the shared admin password. The plaintext from config
// is hashed once at startup and discarded; requests compare against the
// hash.
type Service struct {
	hash []byte
}

// New creates an auth service from the configured admin password. An
// empty password yields a service that rejects everything.
func New(password string) (*Service, error) {
	if password == "" {
		return &Service{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{hash: hash}, nil
}

// Enabled reports whether an admin password is configured
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Verify checks a presented password against the configured one
func (s *Service) Verify(password string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	return bcrypt.CompareHashAndPassword(s.hash, []byte(password))
}
