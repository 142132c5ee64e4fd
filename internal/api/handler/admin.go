package handler

import (
	"net/http"

	"github.com/dashgames/scrambledash/internal/api/response"
	"github.com/dashgames/scrambledash/internal/services/leaderboard"
)

// AdminHandler handles the password-gated admin endpoints
type AdminHandler struct {
	leaderboard *leaderboard.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(leaderboardService *leaderboard.Service) *AdminHandler {
	return &AdminHandler{
		leaderboard: leaderboardService,
	}
}

// Players handles GET /api/v1/admin/players
func (h *AdminHandler) Players(w http.ResponseWriter, r *http.Request) {
	players, err := h.leaderboard.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	stats, err := h.leaderboard.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AdminPlayers{
		Players: response.PlayersFromModel(players),
		Stats:   stats,
	})
}

// Export handles GET /api/v1/admin/export, serving the full player dump
// as a download
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	players, err := h.leaderboard.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="players-export.json"`)
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}
