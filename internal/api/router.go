package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dashgames/scrambledash/internal/api/handler"
	apimiddleware "github.com/dashgames/scrambledash/internal/api/middleware"
	"github.com/dashgames/scrambledash/internal/dependencies/clock"
	"github.com/dashgames/scrambledash/internal/middleware"
	"github.com/dashgames/scrambledash/internal/services/auth"
	"github.com/dashgames/scrambledash/internal/services/gate"
	"github.com/dashgames/scrambledash/internal/services/identity"
	"github.com/dashgames/scrambledash/internal/services/leaderboard"
	"github.com/dashgames/scrambledash/internal/services/round"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Clock              clock.Clock
	AuthService        *auth.Service
	IdentityService    *identity.Service
	GateService        *gate.Service
	LeaderboardService *leaderboard.Service
	LeaderboardPoller  *leaderboard.Poller
	RoundController    *round.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.LeaderboardService, cfg.LeaderboardPoller)
	sessionHandler := handler.NewSessionHandler(cfg.GateService)
	gameHandler := handler.NewGameHandler(cfg.RoundController, cfg.Clock)
	adminHandler := handler.NewAdminHandler(cfg.LeaderboardService)
	identityHandler := handler.NewIdentityHandler(cfg.IdentityService)

	// Create middleware
	adminMiddleware := apimiddleware.Admin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Leaderboard routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Upsert).Methods(http.MethodPost)
	api.Handle("/players", adminMiddleware(http.HandlerFunc(playerHandler.Action))).Methods(http.MethodPut)
	api.HandleFunc("/players/check-username", playerHandler.CheckUsername).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", sessionHandler.Update).Methods(http.MethodPut)

	// Identity route
	api.HandleFunc("/identity", identityHandler.Issue).Methods(http.MethodPost)

	// Round routes
	api.HandleFunc("/game", gameHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/game/{round_id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/{round_id}/answer", gameHandler.Answer).Methods(http.MethodPost)
	api.HandleFunc("/game/{round_id}", gameHandler.Dispose).Methods(http.MethodDelete)

	// Admin routes (all password-gated)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/players", adminHandler.Players).Methods(http.MethodGet)
	admin.HandleFunc("/export", adminHandler.Export).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
