package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dashgames/scrambledash/internal/dependencies/clock"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage"
)

// CooldownWindow is how long a completed game locks a player (and their
// device) out of starting another.
const CooldownWindow = 24 * time.Hour

// Service enforces the play-once cooldown and owns session records.
// Gate checks fail open: if storage is unreachable we let the player
// through rather than lock everyone out.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new gate service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "gate-service")),
	}
}

// CanPlay checks whether the given device/user pair may start a round.
// On refusal it returns the remaining wait along with ErrOnCooldown
// (this user played) or ErrDeviceAlreadyPlayed (another user on this
// device played).
func (s *Service) CanPlay(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (time.Duration, error) {
	now := s.clock.Now()

	session, err := s.storage.GetSession(ctx, deviceID, userID)
	if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		s.logger.Warn("cooldown check failed, allowing play",
			slog.String("device_id", string(deviceID)),
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
		return 0, nil
	}
	if session != nil && session.GameCompleted {
		if wait := remainingWait(session, now); wait > 0 {
			return wait, model.ErrOnCooldown
		}
	}

	latest, err := s.storage.GetLatestDeviceSession(ctx, deviceID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return 0, nil
		}
		s.logger.Warn("device check failed, allowing play",
			slog.String("device_id", string(deviceID)),
			slog.String("error", err.Error()),
		)
		return 0, nil
	}
	if latest.UserID != userID && latest.GameCompleted {
		if wait := remainingWait(latest, now); wait > 0 {
			return wait, model.ErrDeviceAlreadyPlayed
		}
	}

	return 0, nil
}

// TimeUntilEligible returns how long the device/user pair must wait
// before playing again; zero when they may play now.
func (s *Service) TimeUntilEligible(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (time.Duration, error) {
	wait, err := s.CanPlay(ctx, deviceID, userID)
	if err != nil && !errors.Is(err, model.ErrOnCooldown) && !errors.Is(err, model.ErrDeviceAlreadyPlayed) {
		return 0, err
	}
	return wait, nil
}

// DeviceSeen reports whether any user has a session on this device
func (s *Service) DeviceSeen(ctx context.Context, deviceID model.DeviceID) (bool, error) {
	_, err := s.storage.GetLatestDeviceSession(ctx, deviceID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CooldownError carries the remaining wait alongside the refusal
// reason, so callers can surface both
type CooldownError struct {
	Err  error
	Wait time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s (eligible in %s)", e.Err.Error(), FormatWait(e.Wait))
}

func (e *CooldownError) Unwrap() error {
	return e.Err
}

func remainingWait(session *model.GameSession, now time.Time) time.Duration {
	eligibleAt := session.LastPlayed.Add(CooldownWindow)
	if wait := eligibleAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// FormatWait renders a wait duration as HH:MM:SS for display
func FormatWait(wait time.Duration) string {
	if wait < 0 {
		wait = 0
	}
	total := int(wait.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Session operations. The gate owns session records since they are what
// it gates on.

// Record saves a session, stamping timestamps from the service clock
func (s *Service) Record(ctx context.Context, session *model.GameSession) error {
	now := s.clock.Now()
	if session.CreatedAt.IsZero() {
		if existing, err := s.storage.GetSession(ctx, session.DeviceID, session.UserID); err == nil {
			session.CreatedAt = existing.CreatedAt
		} else {
			session.CreatedAt = now
		}
	}
	if session.LastPlayed.IsZero() {
		session.LastPlayed = now
	}
	session.UpdatedAt = now

	return s.storage.SaveSession(ctx, session)
}

// Update applies a partial update to an existing session
func (s *Service) Update(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID, update model.SessionUpdate) error {
	return s.storage.UpdateSession(ctx, deviceID, userID, update)
}

// Session returns the session for a device/user pair
func (s *Service) Session(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (*model.GameSession, error) {
	return s.storage.GetSession(ctx, deviceID, userID)
}

// LatestDeviceSession returns the most recently played session on a device
func (s *Service) LatestDeviceSession(ctx context.Context, deviceID model.DeviceID) (*model.GameSession, error) {
	return s.storage.GetLatestDeviceSession(ctx, deviceID)
}
