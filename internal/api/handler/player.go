package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dashgames/scrambledash/internal/api/request"
	"github.com/dashgames/scrambledash/internal/api/response"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/leaderboard"
)

// PlayerHandler handles leaderboard endpoints
type PlayerHandler struct {
	leaderboard *leaderboard.Service
	poller      *leaderboard.Poller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(leaderboardService *leaderboard.Service, poller *leaderboard.Poller) *PlayerHandler {
	return &PlayerHandler{
		leaderboard: leaderboardService,
		poller:      poller,
	}
}

// List handles GET /api/v1/players. Served from the poller's snapshot
// so 1 Hz polling clients never fan out to storage.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players := h.poller.Snapshot()
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Upsert handles POST /api/v1/players
func (h *PlayerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.ID == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	player, err := h.leaderboard.Upsert(r.Context(), model.PlayerID(req.ID), req.Name, req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Action handles PUT /api/v1/players (admin-gated bulk actions)
func (h *PlayerHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var err error
	switch req.Action {
	case "reset":
		err = h.leaderboard.Reset(r.Context())
	case "clear":
		err = h.leaderboard.Clear(r.Context())
	default:
		WriteError(w, NewInvalidRequestError("action must be \"reset\" or \"clear\""))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	// The next poll refresh picks up the change; refresh now so clients
	// don't see a stale snapshot for up to a full interval
	h.poller.Refresh(r.Context())

	response.JSON(w, http.StatusOK, response.Success{Success: true})
}

// CheckUsername handles GET /api/v1/players/check-username?name=
func (h *PlayerHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	available, message, err := h.leaderboard.CheckName(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsernameCheck{
		Available: available,
		Message:   message,
	})
}
