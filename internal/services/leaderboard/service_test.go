package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dashgames/scrambledash/internal/dependencies/mocks"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage/memory"
	"github.com/dashgames/scrambledash/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestUpsertCreatesPlayer() {
	player, err := s.service.Upsert(s.ctx, "player-1", "Alice", 3)
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
	s.Equal(3, player.Score)
	s.True(player.CreatedAt.Equal(s.clock.Now()))
}

func (s *ServiceSuite) TestUpsertTrimsName() {
	player, err := s.service.Upsert(s.ctx, "player-1", "  Alice  ", 0)
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
}

func (s *ServiceSuite) TestUpsertRequiresName() {
	_, err := s.service.Upsert(s.ctx, "player-1", "   ", 0)
	s.ErrorIs(err, model.ErrNameRequired)
}

func (s *ServiceSuite) TestUpsertFloorsNegativeScore() {
	player, err := s.service.Upsert(s.ctx, "player-1", "Alice", -5)
	s.Require().NoError(err)
	s.Equal(0, player.Score)
}

func (s *ServiceSuite) TestUpsertOnlyRaisesExistingScore() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 5)
	s.Require().NoError(err)

	player, err := s.service.Upsert(s.ctx, "player-1", "Alice", 2)
	s.Require().NoError(err)
	s.Equal(5, player.Score)

	player, err = s.service.Upsert(s.ctx, "player-1", "Alice", 7)
	s.Require().NoError(err)
	s.Equal(7, player.Score)
}

func (s *ServiceSuite) TestUpsertRejectsTakenName() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 0)
	s.Require().NoError(err)

	_, err = s.service.Upsert(s.ctx, "player-2", "alice", 0)
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestUpsertRenameCannotTakeHeldName() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 5)
	s.Require().NoError(err)
	_, err = s.service.Upsert(s.ctx, "player-2", "Bob", 0)
	s.Require().NoError(err)

	_, err = s.service.Upsert(s.ctx, "player-2", "alice", 0)
	s.ErrorIs(err, model.ErrNameTaken)

	// The refused rename must leave both records untouched
	holder, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), holder.ID)
	s.Equal(5, holder.Score)

	player, err := s.service.Get(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal("Bob", player.Name)
}

func (s *ServiceSuite) TestUpsertRenameToFreeName() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 3)
	s.Require().NoError(err)

	player, err := s.service.Upsert(s.ctx, "player-1", "Alicia", 3)
	s.Require().NoError(err)
	s.Equal("Alicia", player.Name)

	_, err = s.storage.GetPlayerByName(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestAddPoints() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 0)
	s.Require().NoError(err)

	player, err := s.service.AddPoints(s.ctx, "player-1", 1)
	s.Require().NoError(err)
	s.Equal(1, player.Score)

	player, err = s.service.AddPoints(s.ctx, "player-1", 0)
	s.Require().NoError(err)
	s.Equal(1, player.Score)

	player, err = s.service.AddPoints(s.ctx, "player-1", -3)
	s.Require().NoError(err)
	s.Equal(1, player.Score)
}

func (s *ServiceSuite) TestAddPointsUnknownPlayer() {
	_, err := s.service.AddPoints(s.ctx, "missing", 1)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListOrdersByScoreThenName() {
	_, err := s.service.Upsert(s.ctx, "player-1", "alice", 2)
	s.Require().NoError(err)
	_, err = s.service.Upsert(s.ctx, "player-2", "Bob", 5)
	s.Require().NoError(err)
	_, err = s.service.Upsert(s.ctx, "player-3", "Carol", 2)
	s.Require().NoError(err)

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Bob", players[0].Name)
	s.Equal("alice", players[1].Name)
	s.Equal("Carol", players[2].Name)
}

func (s *ServiceSuite) TestCheckName() {
	available, message, err := s.service.CheckName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.True(available)
	s.Equal(`Username "Alice" is available!`, message)

	_, err = s.service.Upsert(s.ctx, "player-1", "Alice", 0)
	s.Require().NoError(err)

	available, message, err = s.service.CheckName(s.ctx, "ALICE")
	s.Require().NoError(err)
	s.False(available)
	s.Equal(`Username "ALICE" is already taken. Please choose a different name.`, message)
}

func (s *ServiceSuite) TestCheckNameRequiresName() {
	_, _, err := s.service.CheckName(s.ctx, "  ")
	s.ErrorIs(err, model.ErrNameRequired)
}

func (s *ServiceSuite) TestResetAndClear() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 4)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Reset(s.ctx))
	player, err := s.service.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(0, player.Score)

	s.Require().NoError(s.service.Clear(s.ctx))
	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *ServiceSuite) TestStats() {
	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 4)
	s.Require().NoError(err)
	_, err = s.service.Upsert(s.ctx, "player-2", "Bob", 2)
	s.Require().NoError(err)

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.TotalPlayers)
	s.Equal(6, stats.TotalScore)
	s.Equal(3.0, stats.AverageScore)
	s.Equal(4, stats.TopScore)
}

func (s *ServiceSuite) TestStatsEmpty() {
	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, stats.TotalPlayers)
	s.Equal(0.0, stats.AverageScore)
}

func (s *ServiceSuite) TestPollerSnapshot() {
	poller := NewPoller(s.service, time.Minute, testutil.NopLogger())

	s.Empty(poller.Snapshot())

	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 4)
	s.Require().NoError(err)
	_, err = s.service.Upsert(s.ctx, "player-2", "Bob", 7)
	s.Require().NoError(err)

	poller.Refresh(s.ctx)

	snapshot := poller.Snapshot()
	s.Require().Len(snapshot, 2)
	s.Equal("Bob", snapshot[0].Name)
}

func (s *ServiceSuite) TestPollerStartAndStop() {
	poller := NewPoller(s.service, time.Millisecond, testutil.NopLogger())

	_, err := s.service.Upsert(s.ctx, "player-1", "Alice", 1)
	s.Require().NoError(err)

	poller.Start(s.ctx)
	defer poller.Stop()

	// Start does a synchronous refresh before the ticker kicks in
	s.Len(poller.Snapshot(), 1)
}
