package response

import (
	"fmt"
	"time"

	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/leaderboard"
)

// Player represents a leaderboard entry in API responses
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Score:     p.Score,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return out
}

// Session represents a game session in API responses
type Session struct {
	DeviceID      string    `json:"deviceId"`
	UserID        string    `json:"userId"`
	PlayerName    string    `json:"playerName"`
	LastPlayed    time.Time `json:"lastPlayed"`
	GameCompleted bool      `json:"gameCompleted"`
	Score         int       `json:"score"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SessionFromModel converts a model.GameSession to a response Session
func SessionFromModel(s *model.GameSession) Session {
	return Session{
		DeviceID:      string(s.DeviceID),
		UserID:        string(s.UserID),
		PlayerName:    s.PlayerName,
		LastPlayed:    s.LastPlayed,
		GameCompleted: s.GameCompleted,
		Score:         s.Score,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// UsernameCheck is the response for name availability checks
type UsernameCheck struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Identity is the response carrying freshly minted identifiers
type Identity struct {
	DeviceID string `json:"deviceId"`
	UserID   string `json:"userId"`
}

// Success is a generic acknowledgement response
type Success struct {
	Success bool `json:"success"`
}

// Round represents a round snapshot in API responses. The current
// acronym is never exposed while a question is open; only the scrambled
// prompt is.
type Round struct {
	RoundID   string `json:"roundId"`
	State     string `json:"state"`
	Score     int    `json:"score"`
	Scrambled string `json:"scrambled,omitempty"`
	Message   string `json:"message,omitempty"`
	Remaining int    `json:"remaining"`
	TimeLeft  string `json:"timeLeft"` // MM:SS
}

// RoundFromModel converts a model.Round to a response Round
func RoundFromModel(r *model.Round, now time.Time) Round {
	return Round{
		RoundID:   string(r.ID),
		State:     string(r.State),
		Score:     r.Score,
		Scrambled: r.Scrambled,
		Message:   r.Message,
		Remaining: r.Remaining(),
		TimeLeft:  formatTimeLeft(r.TimeLeft(now)),
	}
}

func formatTimeLeft(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// AnswerResult is the response for an answer submission
type AnswerResult struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
	Round   Round  `json:"round"`
}

// AdminPlayers is the admin view over the leaderboard
type AdminPlayers struct {
	Players []Player           `json:"players"`
	Stats   *leaderboard.Stats `json:"stats"`
}
