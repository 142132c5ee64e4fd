package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Refuse to re-point a name index entry held by another player
	holder, err := s.client.Get(ctx, nameIndexKey(player.Name)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && model.PlayerID(holder) != player.ID {
		return model.ErrNameTaken
	}

	// A rename must drop the stale name index entry
	existing, err := s.GetPlayer(ctx, player.ID)
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return err
	}

	key := playerKey(player.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, nameIndexKey(player.Name), string(player.ID), 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	if existing != nil && nameIndexKey(existing.Name) != nameIndexKey(player.Name) {
		pipe.Del(ctx, nameIndexKey(existing.Name))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	idStr, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(idStr))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Key may have been removed since the index read
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) ResetScores(ctx context.Context) error {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, player := range players {
		player.Score = 0
		data, err := json.Marshal(player)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerKey(player.ID), data, 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ClearPlayers(ctx context.Context) error {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, player := range players {
		pipe.Del(ctx, playerKey(player.ID))
		pipe.Del(ctx, nameIndexKey(player.Name))
	}
	pipe.Del(ctx, playersIndexKey())
	_, err = pipe.Exec(ctx)
	return err
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := sessionKey(session.DeviceID, session.UserID)
	indexKey := deviceSessionsKey(session.DeviceID)

	// Pipeline for atomic save + device index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SessionTTL)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(session.LastPlayed.UnixMilli()),
		Member: string(session.UserID),
	})
	pipe.Expire(ctx, indexKey, s.cfg.SessionTTL) // Keep index TTL in sync
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, deviceID model.DeviceID, userID model.PlayerID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(deviceID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) GetLatestDeviceSession(ctx context.Context, deviceID model.DeviceID) (*model.GameSession, error) {
	members, err := s.client.ZRevRange(ctx, deviceSessionsKey(deviceID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		session, err := s.GetSession(ctx, deviceID, model.PlayerID(member))
		if err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				continue // Session expired but index entry lingers
			}
			return nil, err
		}
		return session, nil
	}

	return nil, model.ErrSessionNotFound
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
	data, err := s.client.Get(ctx, catalogKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCatalogNotLoaded
		}
		return nil, err
	}

	var entries []model.Acronym
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Storage) SaveCatalog(ctx context.Context, entries []model.Acronym) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, catalogKey(), data, 0).Err()
}
