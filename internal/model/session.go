package model

import "time"

// DeviceID identifies a device/browser profile; stable for its lifetime,
// unlike PlayerID which is regenerated per page load
type DeviceID string

// GameSession records the outcome of a round for a (device, user) pair.
// One conceptual record per pair; a completed session arms the play-again
// cooldown, measured from LastPlayed.
type GameSession struct {
	DeviceID      DeviceID
	UserID        PlayerID
	PlayerName    string
	LastPlayed    time.Time
	GameCompleted bool
	Score         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SessionUpdate is a partial update to a session; nil fields are left untouched
type SessionUpdate struct {
	PlayerName    *string
	LastPlayed    *time.Time
	GameCompleted *bool
	Score         *int
}

// Apply copies the non-nil fields onto the session
func (u SessionUpdate) Apply(s *GameSession) {
	if u.PlayerName != nil {
		s.PlayerName = *u.PlayerName
	}
	if u.LastPlayed != nil {
		s.LastPlayed = *u.LastPlayed
	}
	if u.GameCompleted != nil {
		s.GameCompleted = *u.GameCompleted
	}
	if u.Score != nil {
		s.Score = *u.Score
	}
}
