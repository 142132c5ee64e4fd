package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dashgames/scrambledash/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	store, err := New(":memory:")
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	player := &model.Player{ID: "player-1", Name: "Alice", Score: 3, CreatedAt: now, UpdatedAt: now}

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.Equal(3, got.Score)
	s.True(got.CreatedAt.Equal(now))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayerUpdatesExisting() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 1}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 4}))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(4, got.Score)
}

func (s *StorageSuite) TestNameUniquenessIsCaseInsensitive() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))

	err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "ALICE"})
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *StorageSuite) TestSavePlayerRenameCannotTakeHeldName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"}))

	err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "alice"})
	s.ErrorIs(err, model.ErrNameTaken)

	got, err := s.storage.GetPlayer(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal("Bob", got.Name)
}

func (s *StorageSuite) TestGetPlayerByNameIsCaseInsensitive() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))

	got, err := s.storage.GetPlayerByName(s.ctx, "aLiCe")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), got.ID)
}

func (s *StorageSuite) TestListPlayersOrdersByScoreDescending() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 2}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob", Score: 5}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("player-2"), players[0].ID)
}

func (s *StorageSuite) TestResetAndClear() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 2}))

	s.Require().NoError(s.storage.ResetScores(s.ctx))
	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(0, got.Score)

	s.Require().NoError(s.storage.ClearPlayers(s.ctx))
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestSessionRoundTrip() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	session := &model.GameSession{
		DeviceID:      "device-1",
		UserID:        "user-1",
		PlayerName:    "Alice",
		LastPlayed:    now,
		GameCompleted: true,
		Score:         4,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "device-1", "user-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.PlayerName)
	s.True(got.GameCompleted)
	s.True(got.LastPlayed.Equal(now))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "device-1", "user-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetLatestDeviceSession() {
	base := time.Now().UTC().Truncate(time.Millisecond)
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		DeviceID: "device-1", UserID: "user-1", PlayerName: "Alice", LastPlayed: base.Add(-2 * time.Hour),
	}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		DeviceID: "device-1", UserID: "user-2", PlayerName: "Bob", LastPlayed: base,
	}))

	got, err := s.storage.GetLatestDeviceSession(s.ctx, "device-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("user-2"), got.UserID)
}

func (s *StorageSuite) TestUpdateSession() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		DeviceID: "device-1", UserID: "user-1", PlayerName: "Alice", LastPlayed: now,
	}))

	completed := true
	later := now.Add(time.Hour)
	err := s.storage.UpdateSession(s.ctx, "device-1", "user-1", model.SessionUpdate{
		GameCompleted: &completed,
		LastPlayed:    &later,
	})
	s.Require().NoError(err)

	got, err := s.storage.GetSession(s.ctx, "device-1", "user-1")
	s.Require().NoError(err)
	s.True(got.GameCompleted)
	s.True(got.LastPlayed.Equal(later))
}

func (s *StorageSuite) TestUpdateSessionNotFound() {
	completed := true
	err := s.storage.UpdateSession(s.ctx, "device-1", "user-1", model.SessionUpdate{GameCompleted: &completed})
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestCatalogRoundTrip() {
	entries := []model.Acronym{
		{Acronym: "VPN", Definition: "Virtual Private Network"},
		{Acronym: "FOI", Definition: "Freedom of Information"},
	}

	s.Require().NoError(s.storage.SaveCatalog(s.ctx, entries))

	got, err := s.storage.GetCatalog(s.ctx)
	s.Require().NoError(err)
	s.Equal(entries, got)
}

func (s *StorageSuite) TestCatalogNotLoaded() {
	_, err := s.storage.GetCatalog(s.ctx)
	s.ErrorIs(err, model.ErrCatalogNotLoaded)
}
