package sqlite

import (
	"database/sql"
	"fmt"
)

// createSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Players (leaderboard entries)
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    score INTEGER NOT NULL DEFAULT 0 CHECK (score >= 0),
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Game sessions (one per device/user pair; arms the cooldown)
CREATE TABLE IF NOT EXISTS game_sessions (
    device_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    player_name TEXT NOT NULL,
    last_played INTEGER NOT NULL,
    game_completed INTEGER NOT NULL DEFAULT 0,
    score INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (device_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_game_sessions_device ON game_sessions(device_id, last_played);

-- Acronym catalog; position preserves file order
CREATE TABLE IF NOT EXISTS acronyms (
    position INTEGER PRIMARY KEY,
    acronym TEXT NOT NULL,
    definition TEXT NOT NULL
);
`
