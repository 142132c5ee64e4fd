package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dashgames/scrambledash/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		Name:      "Alice",
		Score:     3,
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal("Alice", got.Name)
	s.Equal(3, got.Score)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByNameIsCaseInsensitive() {
	player := &model.Player{ID: "player-1", Name: "Alice", Score: 0}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayerByName(s.ctx, "aLiCe")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), got.ID)
}

func (s *StorageSuite) TestSavePlayerRejectsHeldName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))

	err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "ALICE"})
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *StorageSuite) TestSavePlayerRenameCannotTakeHeldName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"}))

	err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "alice"})
	s.ErrorIs(err, model.ErrNameTaken)

	// The name still resolves to its original holder
	holder, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), holder.ID)

	got, err := s.storage.GetPlayer(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal("Bob", got.Name)
}

func (s *StorageSuite) TestSavePlayerRenameDropsOldNameIndex() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alicia"}))

	_, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	got, err := s.storage.GetPlayerByName(s.ctx, "alicia")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), got.ID)
}

func (s *StorageSuite) TestListPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 2}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob", Score: 5}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestResetScores() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 2}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob", Score: 5}))

	s.Require().NoError(s.storage.ResetScores(s.ctx))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	for _, player := range players {
		s.Equal(0, player.Score)
	}
}

func (s *StorageSuite) TestClearPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 2}))

	s.Require().NoError(s.storage.ClearPlayers(s.ctx))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)

	_, err = s.storage.GetPlayerByName(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	session := &model.GameSession{
		DeviceID:      "device-1",
		UserID:        "user-1",
		PlayerName:    "Alice",
		LastPlayed:    now,
		GameCompleted: true,
		Score:         4,
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

func (s *StorageSuite) TestGetLatestDeviceSessionNotFound() {
	_, err := s.storage.GetLatestDeviceSession(s.ctx, "device-unknown")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestUpdateSession() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.GameSession{
		DeviceID: "device-1", UserID: "user-1", PlayerName: "Alice", LastPlayed: now,
	}))

	completed := true
	score := 7
	err := s.storage.UpdateSession(s.ctx, "device-1", "user-1", model.SessionUpdate{
		GameCompleted: &completed,
		Score:         &score,
	})
	s.Require().NoError(err)

	got, err := s.storage.GetSession(s.ctx, "device-1", "user-1")
	s.Require().NoError(err)
	s.True(got.GameCompleted)
	s.Equal(7, got.Score)
	s.Equal("Alice", got.PlayerName)
}

func (s *StorageSuite) TestUpdateSessionNotFound() {
	completed := true
	err := s.storage.UpdateSession(s.ctx, "device-1", "user-1", model.SessionUpdate{GameCompleted: &completed})
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Catalog tests

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
