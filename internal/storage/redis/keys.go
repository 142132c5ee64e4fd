package redis

import (
	"fmt"
	"strings"

	"github.com/dashgames/scrambledash/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "scrambledash"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// nameIndexKey returns the Redis key for the lowercased name -> player_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, strings.ToLower(name))
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(deviceID model.DeviceID, userID model.PlayerID) string {
	return fmt.Sprintf("%s:session:%s:%s", keyPrefix, deviceID, userID)
}

// deviceSessionsKey returns the Redis key for the ZSET of a device's
// sessions, scored by last-played time
func deviceSessionsKey(deviceID model.DeviceID) string {
	return fmt.Sprintf("%s:idx:device_sessions:%s", keyPrefix, deviceID)
}

// catalogKey returns the Redis key for the acronym catalog
func catalogKey() string {
	return fmt.Sprintf("%s:catalog", keyPrefix)
}
