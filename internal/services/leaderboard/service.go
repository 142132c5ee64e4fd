package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dashgames/scrambledash/internal/dependencies/clock"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage"
)

// Service manages leaderboard entries: one player per display name,
// highest score wins.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// Stats summarises the leaderboard for the admin surface
type Stats struct {
	TotalPlayers int     `json:"totalPlayers"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
	TopScore     int     `json:"topScore"`
}

// New creates a new leaderboard service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "leaderboard-service")),
	}
}

// Upsert creates or updates a player's leaderboard entry. An existing
// player's score only moves up, never down; negative scores are floored
// at zero. Creating a new entry under a name already held by someone
// else fails with ErrNameTaken.
func (s *Service) Upsert(ctx context.Context, id model.PlayerID, name string, score int) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}
	if score < 0 {
		score = 0
	}

	now := s.clock.Now()

	existing, err := s.storage.GetPlayer(ctx, id)
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	// Creates and renames both have to clear the name's current holder
	if holder, err := s.storage.GetPlayerByName(ctx, name); err == nil && holder.ID != id {
		return nil, model.ErrNameTaken
	} else if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	if existing != nil {
		if score > existing.Score {
			existing.Score = score
		}
		existing.Name = name
		existing.UpdatedAt = now
		if err := s.storage.SavePlayer(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	player := &model.Player{
		ID:        id,
		Name:      name,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player joined leaderboard",
		slog.String("player_id", string(id)),
		slog.String("player_name", name),
	)
	return player, nil
}

// AddPoints increments a player's score by delta. Non-positive deltas
// are a no-op.
func (s *Service) AddPoints(ctx context.Context, id model.PlayerID, delta int) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if delta <= 0 {
		return player, nil
	}

	player.Score += delta
	player.UpdatedAt = s.clock.Now()
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Get returns a single player by ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// List returns all players ordered by score descending, name ascending
// as the tiebreak
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
	return players, nil
}

// CheckName reports whether a display name is free, with a message
// suitable for showing directly to the player
func (s *Service) CheckName(ctx context.Context, name string) (bool, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "", model.ErrNameRequired
	}

	_, err := s.storage.GetPlayerByName(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return true, fmt.Sprintf("Username %q is available!", name), nil
		}
		return false, "", err
	}
	return false, fmt.Sprintf("Username %q is already taken. Please choose a different name.", name), nil
}

// Reset zeroes every score while keeping the entries
func (s *Service) Reset(ctx context.Context) error {
	if err := s.storage.ResetScores(ctx); err != nil {
		return err
	}
	s.logger.Info("leaderboard scores reset")
	return nil
}

// Clear removes every leaderboard entry
func (s *Service) Clear(ctx context.Context) error {
	if err := s.storage.ClearPlayers(ctx); err != nil {
		return err
	}
	s.logger.Info("leaderboard cleared")
	return nil
}

// Stats computes summary statistics over the current leaderboard
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalPlayers: len(players)}
	for _, player := range players {
		stats.TotalScore += player.Score
		if player.Score > stats.TopScore {
			stats.TopScore = player.Score
		}
	}
	if stats.TotalPlayers > 0 {
		stats.AverageScore = float64(stats.TotalScore) / float64(stats.TotalPlayers)
	}
	return stats, nil
}
