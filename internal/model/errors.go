package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNameRequired   = errors.New("player name is required")
	ErrNameTaken      = errors.New("player name is already taken")

	// Session errors. A missing session is a normal outcome (no prior
	// game), not a failure.
	ErrSessionNotFound = errors.New("game session not found")

	// Round errors
	ErrRoundNotFound       = errors.New("round not found")
	ErrRoundEnded          = errors.New("round has ended")
	ErrNoOpenQuestion      = errors.New("no question awaiting an answer")
	ErrOnCooldown          = errors.New("player is on cooldown")
	ErrDeviceAlreadyPlayed = errors.New("device has already played")

	// Catalog errors
	ErrCatalogNotLoaded = errors.New("acronym catalog not loaded")
	ErrCatalogEmpty     = errors.New("acronym catalog is empty")
)
