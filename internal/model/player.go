package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a leaderboard entry. Names are unique case-insensitively;
// storage is the source of truth for collisions.
type Player struct {
	ID        PlayerID
	Name      string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
