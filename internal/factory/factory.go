package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dashgames/scrambledash/internal/dependencies/clock"
	"github.com/dashgames/scrambledash/internal/dependencies/random"
	"github.com/dashgames/scrambledash/internal/services/auth"
	"github.com/dashgames/scrambledash/internal/services/catalog"
	"github.com/dashgames/scrambledash/internal/services/gate"
	"github.com/dashgames/scrambledash/internal/services/identity"
	"github.com/dashgames/scrambledash/internal/services/leaderboard"
	"github.com/dashgames/scrambledash/internal/services/round"
	"github.com/dashgames/scrambledash/internal/storage"
	"github.com/dashgames/scrambledash/internal/storage/memory"
	redisstorage "github.com/dashgames/scrambledash/internal/storage/redis"
	sqlitestorage "github.com/dashgames/scrambledash/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService     *catalog.Service
	IdentityService    *identity.Service
	GateService        *gate.Service
	LeaderboardService *leaderboard.Service
	LeaderboardPoller  *leaderboard.Poller
	RoundController    *round.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// CatalogPath is the path to the acronym catalog file (optional)
	// If empty, the catalog must be loaded manually
	CatalogPath string
	// AdminPassword gates the admin surface (optional; empty disables it)
	AdminPassword string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database path (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app, err := newWithDependencies(store, clk, rnd, cfg.AdminPassword, logger)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, adminPassword string, logger *slog.Logger) (*App, error) {
	catalogService := catalog.New(store)
	identityService := identity.New()
	gateService := gate.New(store, clk, logger)
	leaderboardService := leaderboard.New(store, clk, logger)
	leaderboardPoller := leaderboard.NewPoller(leaderboardService, leaderboard.DefaultPollInterval, logger)
	roundController := round.New(catalogService, leaderboardService, gateService, clk, rnd, logger)

	authService, err := auth.New(adminPassword)
	if err != nil {
		return nil, err
	}

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		CatalogService:     catalogService,
		IdentityService:    identityService,
		GateService:        gateService,
		LeaderboardService: leaderboardService,
		LeaderboardPoller:  leaderboardPoller,
		RoundController:    roundController,
		AuthService:        authService,
	}, nil
}
