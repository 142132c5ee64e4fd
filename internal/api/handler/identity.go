package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dashgames/scrambledash/internal/api/request"
	"github.com/dashgames/scrambledash/internal/api/response"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/identity"
)

// IdentityHandler mints device and user identifiers for new clients
type IdentityHandler struct {
	identity *identity.Service
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(identityService *identity.Service) *IdentityHandler {
	return &IdentityHandler{
		identity: identityService,
	}
}

// Issue handles POST /api/v1/identity. The body is optional; a known
// deviceId is kept, and a fresh user ID is minted either way.
func (h *IdentityHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req request.IdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	deviceID := h.identity.EnsureDeviceID(model.DeviceID(req.DeviceID))
	userID := h.identity.NewUserID()

	response.JSON(w, http.StatusOK, response.Identity{
		DeviceID: string(deviceID),
		UserID:   string(userID),
	})
}
