package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (creating if necessary) a SQLite database at the given path.
// Use ":memory:" for an ephemeral database in tests.
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// database/sql pooling hands a :memory: database per connection;
	// a single connection keeps one coherent database
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			score = excluded.score,
			updated_at = excluded.updated_at`,
		string(player.ID), player.Name, player.Score,
		player.CreatedAt.UnixMilli(), player.UpdatedAt.UnixMilli(),
	)
	if err != nil && strings.Contains(err.Error(), "players.name") {
		return model.ErrNameTaken
	}
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, score, created_at, updated_at
		FROM players WHERE id = ?`, string(id))
	return scanPlayer(row)
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, score, created_at, updated_at
		FROM players WHERE name = ? COLLATE NOCASE`, name)
	return scanPlayer(row)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, score, created_at, updated_at
		FROM players ORDER BY score DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	players := []*model.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (s *Storage) ResetScores(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE players SET score = 0`)
	return err
}

func (s *Storage) ClearPlayers(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM players`)
	return err
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_sessions
			(device_id, user_id, player_name, last_played, game_completed, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(device_id, user_id) DO UPDATE SET
			player_name = excluded.player_name,
			last_played = excluded.last_played,
			game_completed = excluded.game_completed,
			score = excluded.score,
			updated_at = excluded.updated_at`,
		string(session.DeviceID), string(session.UserID), session.PlayerName,
		session.LastPlayed.UnixMilli(), boolToInt(session.GameCompleted), session.Score,
		session.CreatedAt.UnixMilli(), session.UpdatedAt.UnixMilli(),
	)
	return err
}

func (s *Storage) GetSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (*model.GameSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT device_id, user_id, player_name, last_played, game_completed, score, created_at, updated_at
		FROM game_sessions WHERE device_id = ? AND user_id = ?`,
		string(deviceID), string(userID))
	return scanSession(row)
}

func (s *Storage) GetLatestDeviceSession(ctx context.Context, deviceID model.DeviceID) (*model.GameSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT device_id, user_id, player_name, last_played, game_completed, score, created_at, updated_at
		FROM game_sessions WHERE device_id = ?
		ORDER BY last_played DESC LIMIT 1`,
		string(deviceID))
	return scanSession(row)
}

func (s *Storage) UpdateSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID, update model.SessionUpdate) error {
	session, err := s.GetSession(ctx, deviceID, userID)
	if err != nil {
		return err
	}

	update.Apply(session)
	return s.SaveSession(ctx, session)
}

// Catalog operations

func (s *Storage) GetCatalog(ctx context.Context) ([]model.Acronym, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT acronym, definition FROM acronyms ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Acronym
	for rows.Next() {
		var entry model.Acronym
		if err := rows.Scan(&entry.Acronym, &entry.Definition); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, model.ErrCatalogNotLoaded
	}
	return entries, nil
}

func (s *Storage) SaveCatalog(ctx context.Context, entries []model.Acronym) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM acronyms`); err != nil {
		return err
	}
	for i, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO acronyms (position, acronym, definition) VALUES (?, ?, ?)`,
			i, entry.Acronym, entry.Definition); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Scan helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*model.Player, error) {
	var player model.Player
	var id string
	var createdAt, updatedAt int64

	err := row.Scan(&id, &player.Name, &player.Score, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	player.ID = model.PlayerID(id)
	player.CreatedAt = time.UnixMilli(createdAt).UTC()
	player.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &player, nil
}

func scanSession(row rowScanner) (*model.GameSession, error) {
	var session model.GameSession
	var deviceID, userID string
	var lastPlayed, createdAt, updatedAt int64
	var completed int

	err := row.Scan(&deviceID, &userID, &session.PlayerName, &lastPlayed, &completed, &session.Score, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	session.DeviceID = model.DeviceID(deviceID)
	session.UserID = model.PlayerID(userID)
	session.LastPlayed = time.UnixMilli(lastPlayed).UTC()
	session.GameCompleted = completed != 0
	session.CreatedAt = time.UnixMilli(createdAt).UTC()
	session.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &session, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
