package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dashgames/scrambledash/internal/api/request"
	"github.com/dashgames/scrambledash/internal/api/response"
	"github.com/dashgames/scrambledash/internal/dependencies/clock"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/round"
)

// GameHandler handles round endpoints
type GameHandler struct {
	rounds *round.Controller
	clock  clock.Clock
}

// NewGameHandler creates a new game handler
func NewGameHandler(rounds *round.Controller, clock clock.Clock) *GameHandler {
	return &GameHandler{
		rounds: rounds,
		clock:  clock,
	}
}

// Join handles POST /api/v1/game
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DeviceID == "" {
		WriteError(w, NewInvalidRequestError("deviceId is required"))
		return
	}
	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("userId is required"))
		return
	}

	snapshot, err := h.rounds.Start(r.Context(), model.DeviceID(req.DeviceID), model.PlayerID(req.UserID), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoundFromModel(snapshot, h.clock.Now()))
}

// Get handles GET /api/v1/game/{round_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	roundID := model.RoundID(mux.Vars(r)["round_id"])

	snapshot, err := h.rounds.Get(r.Context(), roundID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(snapshot, h.clock.Now()))
}

// Answer handles POST /api/v1/game/{round_id}/answer
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	roundID := model.RoundID(mux.Vars(r)["round_id"])

	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	snapshot, correct, err := h.rounds.SubmitAnswer(r.Context(), roundID, req.Answer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AnswerResult{
		Correct: correct,
		Message: snapshot.Message,
		Round:   response.RoundFromModel(snapshot, h.clock.Now()),
	})
}

// Dispose handles DELETE /api/v1/game/{round_id}
func (h *GameHandler) Dispose(w http.ResponseWriter, r *http.Request) {
	roundID := model.RoundID(mux.Vars(r)["round_id"])

	if err := h.rounds.Dispose(roundID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
