package memory

import (
	"context"
	"testing"

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
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSavePlayerRejectsHeldName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"}))

	err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "ALICE"})
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *StorageSuite) TestSavePlayerRenameCannotTakeHeldName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 5}))
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

func (s *StorageSuite) TestSavePlayerSameNameResave() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 1}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice", Score: 4}))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(4, got.Score)
}
