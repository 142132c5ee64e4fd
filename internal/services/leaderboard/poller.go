package leaderboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dashgames/scrambledash/internal/model"
)

// DefaultPollInterval matches the refresh rate the leaderboard view
// polls at.
const DefaultPollInterval = time.Second

// Poller keeps a periodically refreshed snapshot of the leaderboard so
// read-heavy polling traffic never fans out to storage.
type Poller struct {
	service  *Service
	logger   *slog.Logger
	interval time.Duration

	mu    sync.RWMutex
	cache []*model.Player

	done     chan struct{}
	stopOnce sync.Once
}

// NewPoller creates a poller refreshing at the given interval; a
// non-positive interval falls back to DefaultPollInterval
func NewPoller(service *Service, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		service:  service,
		logger:   logger.With(slog.String("component", "leaderboard-poller")),
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start performs an initial refresh then refreshes in the background
// until Stop is called or the context is cancelled
func (p *Poller) Start(ctx context.Context) {
	p.Refresh(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.Refresh(ctx)
			case <-ctx.Done():
				return
			case <-p.done:
				return
			}
		}
	}()
}

// Stop halts the background refresh loop
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

// Refresh replaces the cached snapshot with a fresh read. Errors are
// logged and the previous snapshot kept.
func (p *Poller) Refresh(ctx context.Context) {
	players, err := p.service.List(ctx)
	if err != nil {
		p.logger.Warn("leaderboard refresh failed",
			slog.String("error", err.Error()),
		)
		return
	}

	p.mu.Lock()
	p.cache = players
	p.mu.Unlock()
}

// Snapshot returns the cached leaderboard, ordered by score descending
func (p *Poller) Snapshot() []*model.Player {
	p.mu.RLock()
	defer p.mu.RUnlock()

	players := make([]*model.Player, len(p.cache))
	copy(players, p.cache)
	return players
}
