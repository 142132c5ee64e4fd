package model

import "time"

// RoundID uniquely identifies an in-flight game round
type RoundID string

// RoundState represents the current phase of a round
type RoundState string

const (
	RoundStateCountdown RoundState = "countdown" // joined, first question pending
	RoundStateAsking    RoundState = "asking"    // question on screen, answers open
	RoundStateAnswered  RoundState = "answered"  // answer judged, next question pending
	RoundStateEnded     RoundState = "ended"     // terminal
)

// Round is one timed play-through for a single player. Rounds live only in
// the controller's memory; the GameSession written at round end is what
// persists.
type Round struct {
	ID         RoundID
	DeviceID   DeviceID
	UserID     PlayerID
	PlayerName string

	State RoundState
	Score int

	// Question flow. Pool holds the not-yet-asked questions; draws are
	// without replacement.
	Pool      []Acronym
	Current   *Acronym // question on screen (asking/answered states)
	Scrambled string   // permuted definition words
	Message   string   // last user-facing status line

	// Deadlines. NextFireAt drives countdown->asking and answered->next;
	// EndsAt is the hard round end and always wins a simultaneous fire.
	StartedAt  time.Time
	EndsAt     time.Time
	NextFireAt time.Time

	UpdatedAt time.Time
}

// TimeLeft returns the remaining round duration, floored at zero
func (r *Round) TimeLeft(now time.Time) time.Duration {
	if r.State == RoundStateEnded || !now.Before(r.EndsAt) {
		return 0
	}
	return r.EndsAt.Sub(now)
}

// Remaining returns the number of questions not yet asked
func (r *Round) Remaining() int {
	return len(r.Pool)
}
