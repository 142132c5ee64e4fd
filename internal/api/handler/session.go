package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dashgames/scrambledash/internal/api/request"
	"github.com/dashgames/scrambledash/internal/api/response"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/gate"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	gate *gate.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(gateService *gate.Service) *SessionHandler {
	return &SessionHandler{
		gate: gateService,
	}
}

// Get handles GET /api/v1/sessions?deviceId=&userId=.
// With both parameters it returns that pair's session; with only
// deviceId, the most recent session on the device. A missing session is
// a JSON null body, not an error.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	userID := r.URL.Query().Get("userId")

	if deviceID == "" {
		WriteError(w, NewInvalidRequestError("deviceId is required"))
		return
	}

	var session *model.GameSession
	var err error
	if userID != "" {
		session, err = h.gate.Session(r.Context(), model.DeviceID(deviceID), model.PlayerID(userID))
	} else {
		session, err = h.gate.LatestDeviceSession(r.Context(), model.DeviceID(deviceID))
	}
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			response.JSON(w, http.StatusOK, (*response.Session)(nil))
			return
		}
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
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

	session := &model.GameSession{
		DeviceID:      model.DeviceID(req.DeviceID),
		UserID:        model.PlayerID(req.UserID),
		PlayerName:    req.PlayerName,
		GameCompleted: req.GameCompleted,
		Score:         req.Score,
	}
	if req.LastPlayed != nil {
		session.LastPlayed = *req.LastPlayed
	}

	if err := h.gate.Record(r.Context(), session); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Update handles PUT /api/v1/sessions
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSessionRequest
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

	deviceID := model.DeviceID(req.DeviceID)
	userID := model.PlayerID(req.UserID)

	update := model.SessionUpdate{
		PlayerName:    req.Updates.PlayerName,
		LastPlayed:    req.Updates.LastPlayed,
		GameCompleted: req.Updates.GameCompleted,
		Score:         req.Updates.Score,
	}
	if err := h.gate.Update(r.Context(), deviceID, userID, update); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.gate.Session(r.Context(), deviceID, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}
