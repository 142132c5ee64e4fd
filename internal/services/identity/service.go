package identity

import (
	"github.com/google/uuid"

	"github.com/dashgames/scrambledash/internal/model"
)

// Service mints the anonymous identifiers the cooldown gate keys on.
// A device ID identifies a browser install; a user ID identifies a
// player profile on that device.
type Service struct{}

// New creates a new identity service
func New() *Service {
	return &Service{}
}

// NewDeviceID mints a fresh device identifier
func (s *Service) NewDeviceID() model.DeviceID {
	return model.DeviceID(uuid.NewString())
}

// NewUserID mints a fresh user identifier
func (s *Service) NewUserID() model.PlayerID {
	return model.PlayerID(uuid.NewString())
}

// EnsureDeviceID returns the existing device ID if present, minting a
// new one otherwise
func (s *Service) EnsureDeviceID(existing model.DeviceID) model.DeviceID {
	if existing != "" {
		return existing
	}
	return s.NewDeviceID()
}
