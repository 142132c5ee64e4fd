package storage

import (
	"context"

	"github.com/dashgames/scrambledash/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	ResetScores(ctx context.Context) error
	ClearPlayers(ctx context.Context) error

	// Session operations
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (*model.GameSession, error)
	GetLatestDeviceSession(ctx context.Context, deviceID model.DeviceID) (*model.GameSession, error)
	UpdateSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID, update model.SessionUpdate) error

	// Catalog operations
	GetCatalog(ctx context.Context) ([]model.Acronym, error)
	SaveCatalog(ctx context.Context, entries []model.Acronym) error
}
