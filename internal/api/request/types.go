package request

import "time"

// UpsertPlayerRequest is the request body for creating or updating a
// leaderboard entry
type UpsertPlayerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlayerActionRequest is the request body for bulk leaderboard actions
type PlayerActionRequest struct {
	Action string `json:"action"` // "reset" or "clear"
}

// CreateSessionRequest is the request body for recording a game session
type CreateSessionRequest struct {
	DeviceID      string     `json:"deviceId"`
	UserID        string     `json:"userId"`
	PlayerName    string     `json:"playerName"`
	LastPlayed    *time.Time `json:"lastPlayed,omitempty"`
	GameCompleted bool       `json:"gameCompleted"`
	Score         int        `json:"score"`
}

// SessionUpdates holds the optional fields of a partial session update
type SessionUpdates struct {
	PlayerName    *string    `json:"playerName,omitempty"`
	LastPlayed    *time.Time `json:"lastPlayed,omitempty"`
	GameCompleted *bool      `json:"gameCompleted,omitempty"`
	Score         *int       `json:"score,omitempty"`
}

// UpdateSessionRequest is the request body for a partial session update
type UpdateSessionRequest struct {
	DeviceID string         `json:"deviceId"`
	UserID   string         `json:"userId"`
	Updates  SessionUpdates `json:"updates"`
}

// JoinGameRequest is the request body for starting a round
type JoinGameRequest struct {
	DeviceID string `json:"deviceId"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
}

// AnswerRequest is the request body for submitting an answer
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// IdentityRequest is the request body for minting identifiers; an
// existing device ID is kept
type IdentityRequest struct {
	DeviceID string `json:"deviceId,omitempty"`
}
