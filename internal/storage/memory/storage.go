package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	nameIndex map[string]model.PlayerID // lowercased name -> id
	sessions  map[sessionKey]*model.GameSession
	catalog   []model.Acronym
}

type sessionKey struct {
	deviceID model.DeviceID
	userID   model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		nameIndex: make(map[string]model.PlayerID),
		sessions:  make(map[sessionKey]*model.GameSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if holder, ok := s.nameIndex[strings.ToLower(player.Name)]; ok && holder != player.ID {
		return model.ErrNameTaken
	}

	if existing, ok := s.players[player.ID]; ok {
		delete(s.nameIndex, strings.ToLower(existing.Name))
	}

	copied := *player
	s.players[player.ID] = &copied
	s.nameIndex[strings.ToLower(player.Name)] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[strings.ToLower(name)]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		copied := *player
		players = append(players, &copied)
	}
	return players, nil
}

func (s *Storage) ResetScores(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, player := range s.players {
		player.Score = 0
	}
	return nil
}

func (s *Storage) ClearPlayers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[model.PlayerID]*model.Player)
	s.nameIndex = make(map[string]model.PlayerID)
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[sessionKey{deviceID: session.DeviceID, userID: session.UserID}] = &copied
	return nil
}

func (s *Storage) GetSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionKey{deviceID: deviceID, userID: userID}]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) GetLatestDeviceSession(ctx context.Context, deviceID model.DeviceID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *model.GameSession
	for key, session := range s.sessions {
		if key.deviceID != deviceID {
			continue
		}
		if latest == nil || session.LastPlayed.After(latest.LastPlayed) {
			latest = session
		}
	}
	if latest == nil {
		return nil, model.ErrSessionNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *Storage) UpdateSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID, update model.SessionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionKey{deviceID: deviceID, userID: userID}]
	if !ok {
		return model.ErrSessionNotFound
	}
	update.Apply(session)
	return nil
}

// Catalog operations

func (s *Storage) GetCatalog(ctx context.Context) ([]model.Acronym, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, model.ErrCatalogNotLoaded
	}
	result := make([]model.Acronym, len(s.catalog))
	copy(result, s.catalog)
	return result, nil
}

func (s *Storage) SaveCatalog(ctx context.Context, entries []model.Acronym) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = make([]model.Acronym, len(entries))
	copy(s.catalog, entries)
	return nil
}
