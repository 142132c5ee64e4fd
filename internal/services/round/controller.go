package round

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dashgames/scrambledash/internal/dependencies/clock"
	"github.com/dashgames/scrambledash/internal/dependencies/random"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/catalog"
	"github.com/dashgames/scrambledash/internal/services/gate"
	"github.com/dashgames/scrambledash/internal/services/leaderboard"
)

const (
	// RoundDuration is the wall-clock length of a round
	RoundDuration = 2 * time.Minute
	// FirstQuestionDelay is the countdown before the first question
	FirstQuestionDelay = 3 * time.Second
	// RevealDelay is how long a judged answer stays on screen before the
	// next question
	RevealDelay = 2 * time.Second
	// PointsPerCorrect is awarded per correct answer
	PointsPerCorrect = 1
	// TickInterval is how often the background loop advances rounds
	TickInterval = time.Second

	roundIDLength   = 12
	roundIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// endedRetention keeps finished rounds readable for a grace period
	// before the tick loop evicts them
	endedRetention = 5 * time.Minute
)

const (
	msgCountdown    = "Get ready..."
	msgTimeUp       = "Time's Up! Game Over."
	msgPoolDrained  = "Game Over! You've completed all the acronyms."
	msgCorrect      = "Correct! +1 point."
	msgIncorrectFmt = "Incorrect. The answer was %s."
)

// Controller runs game rounds. All transitions are driven by the clock
// through advance, so a round observed at any time is already in the
// state its deadlines imply.
type Controller struct {
	catalog     *catalog.Service
	leaderboard *leaderboard.Service
	gate        *gate.Service
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger

	mu     sync.Mutex
	rounds map[model.RoundID]*model.Round

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a new round controller
func New(
	catalogService *catalog.Service,
	leaderboardService *leaderboard.Service,
	gateService *gate.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		catalog:     catalogService,
		leaderboard: leaderboardService,
		gate:        gateService,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "round-controller")),
		rounds:      make(map[model.RoundID]*model.Round),
		done:        make(chan struct{}),
	}
}

// Start begins a new round for the given device/user pair. The name is
// claimed on the leaderboard (with a zero score) before the round is
// created, and the cooldown gate is consulted first.
func (c *Controller) Start(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID, playerName string) (*model.Round, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, model.ErrNameRequired
	}

	if wait, err := c.gate.CanPlay(ctx, deviceID, userID); err != nil {
		return nil, &gate.CooldownError{Err: err, Wait: wait}
	}

	if _, err := c.leaderboard.Upsert(ctx, userID, playerName, 0); err != nil {
		return nil, err
	}

	pool, err := c.catalog.Entries()
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	round := &model.Round{
		ID:         c.newRoundID(),
		DeviceID:   deviceID,
		UserID:     userID,
		PlayerName: playerName,
		State:      model.RoundStateCountdown,
		Pool:       pool,
		Message:    msgCountdown,
		StartedAt:  now,
		EndsAt:     now.Add(RoundDuration),
		NextFireAt: now.Add(FirstQuestionDelay),
		UpdatedAt:  now,
	}

	c.mu.Lock()
	c.rounds[round.ID] = round
	snapshot := copyRound(round)
	c.mu.Unlock()

	c.logger.Info("round started",
		slog.String("round_id", string(round.ID)),
		slog.String("user_id", string(userID)),
		slog.String("player_name", playerName),
		slog.Int("pool_size", len(pool)),
	)
	return snapshot, nil
}

// Get returns the round in its current state, applying any transitions
// its deadlines imply
func (c *Controller) Get(ctx context.Context, id model.RoundID) (*model.Round, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, ok := c.rounds[id]
	if !ok {
		return nil, model.ErrRoundNotFound
	}

	c.advance(ctx, round, c.clock.Now())
	return copyRound(round), nil
}

// SubmitAnswer judges an answer against the open question. The answer
// is trimmed and case-normalized before exact comparison against the
// acronym.
func (c *Controller) SubmitAnswer(ctx context.Context, id model.RoundID, answer string) (*model.Round, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, ok := c.rounds[id]
	if !ok {
		return nil, false, model.ErrRoundNotFound
	}

	now := c.clock.Now()
	c.advance(ctx, round, now)

	if round.State == model.RoundStateEnded {
		return nil, false, model.ErrRoundEnded
	}
	if round.State != model.RoundStateAsking || round.Current == nil {
		return nil, false, model.ErrNoOpenQuestion
	}

	normalized := strings.ToUpper(strings.TrimSpace(answer))
	correct := normalized == strings.ToUpper(round.Current.Acronym)
	if correct {
		round.Score += PointsPerCorrect
		round.Message = msgCorrect

		// Persisting the point is best effort; the round-end write
		// settles the final score regardless
		if _, err := c.leaderboard.AddPoints(ctx, round.UserID, PointsPerCorrect); err != nil {
			c.logger.Warn("failed to persist point",
				slog.String("round_id", string(round.ID)),
				slog.String("user_id", string(round.UserID)),
				slog.String("error", err.Error()),
			)
		}
	} else {
		round.Message = fmt.Sprintf(msgIncorrectFmt, round.Current.Acronym)
	}

	round.State = model.RoundStateAnswered
	round.NextFireAt = now.Add(RevealDelay)
	round.UpdatedAt = now

	return copyRound(round), correct, nil
}

// Dispose drops a round without recording anything. Used when the
// player abandons the page mid-round.
func (c *Controller) Dispose(id model.RoundID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rounds[id]; !ok {
		return model.ErrRoundNotFound
	}
	delete(c.rounds, id)
	return nil
}

// Tick advances every round to the given time and evicts ended rounds
// past their retention window
func (c *Controller) Tick(ctx context.Context, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, round := range c.rounds {
		c.advance(ctx, round, now)
		if round.State == model.RoundStateEnded && now.Sub(round.UpdatedAt) > endedRetention {
			delete(c.rounds, id)
		}
	}
}

// Run drives Tick from a wall-clock ticker until Close is called or the
// context is cancelled
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Tick(ctx, c.clock.Now())
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
	}
}

// Close stops the Run loop
func (c *Controller) Close() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

// advance applies every transition due at the given time. Caller holds
// the lock.
func (c *Controller) advance(ctx context.Context, round *model.Round, now time.Time) {
	for round.State != model.RoundStateEnded {
		// The round timer always wins a simultaneous fire
		if !now.Before(round.EndsAt) {
			c.end(ctx, round, now, msgTimeUp)
			return
		}

		pending := round.State == model.RoundStateCountdown || round.State == model.RoundStateAnswered
		if !pending || now.Before(round.NextFireAt) {
			return
		}

		c.nextQuestion(ctx, round, now)
	}
}

// nextQuestion draws the next question without replacement, ending the
// round if the pool is exhausted. Caller holds the lock.
func (c *Controller) nextQuestion(ctx context.Context, round *model.Round, now time.Time) {
	if len(round.Pool) == 0 {
		c.end(ctx, round, now, msgPoolDrained)
		return
	}

	idx := c.random.Intn(len(round.Pool))
	question := round.Pool[idx]
	round.Pool = append(round.Pool[:idx], round.Pool[idx+1:]...)

	round.Current = &question
	round.Scrambled = c.scramble(question.Definition)
	round.State = model.RoundStateAsking
	round.Message = ""
	round.UpdatedAt = now
}

// scramble randomly permutes the words of a definition
func (c *Controller) scramble(definition string) string {
	words := strings.Fields(definition)
	if len(words) < 2 {
		return definition
	}

	perm := c.random.Perm(len(words))
	scrambled := make([]string, len(words))
	for i, j := range perm {
		scrambled[i] = words[j]
	}
	return strings.Join(scrambled, " ")
}

// end finishes a round: a best-effort final leaderboard write, then the
// completed-session record that arms the cooldown. Caller holds the lock.
func (c *Controller) end(ctx context.Context, round *model.Round, now time.Time, message string) {
	round.State = model.RoundStateEnded
	round.Message = message
	round.Current = nil
	round.Scrambled = ""
	round.UpdatedAt = now

	if _, err := c.leaderboard.Upsert(ctx, round.UserID, round.PlayerName, round.Score); err != nil {
		c.logger.Warn("failed final score write",
			slog.String("round_id", string(round.ID)),
			slog.String("user_id", string(round.UserID)),
			slog.String("error", err.Error()),
		)
	}

	session := &model.GameSession{
		DeviceID:      round.DeviceID,
		UserID:        round.UserID,
		PlayerName:    round.PlayerName,
		LastPlayed:    now,
		GameCompleted: true,
		Score:         round.Score,
	}
	if err := c.gate.Record(ctx, session); err != nil {
		c.logger.Warn("failed to record completed session",
			slog.String("round_id", string(round.ID)),
			slog.String("device_id", string(round.DeviceID)),
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("round ended",
		slog.String("round_id", string(round.ID)),
		slog.String("user_id", string(round.UserID)),
		slog.Int("score", round.Score),
		slog.Int("questions_remaining", len(round.Pool)),
	)
}

func (c *Controller) newRoundID() model.RoundID {
	id := c.random.String(roundIDLength, roundIDAlphabet)
	if id == "" {
		id = uuid.NewString()
	}
	return model.RoundID(id)
}

func copyRound(round *model.Round) *model.Round {
	snapshot := *round
	snapshot.Pool = make([]model.Acronym, len(round.Pool))
	copy(snapshot.Pool, round.Pool)
	if round.Current != nil {
		current := *round.Current
		snapshot.Current = &current
	}
	return &snapshot
}
