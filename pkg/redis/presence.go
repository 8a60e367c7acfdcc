package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PresenceData is the ephemeral online-status record kept in redis. It is
// not entity state: the relational store stays the single source of truth
// for everything durable.
type PresenceData struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Status    string    `json:"status"` // online/offline
	LastSeen  time.Time `json:"last_seen"`
	Connected bool      `json:"connected"`
}

const (
	presenceKeyPrefix = "cim:presence:user:"
	onlineUsersKey    = "cim:online:users"
	presenceTTL       = 2 * time.Minute // twice the heartbeat period
)

func presenceKey(userID uuid.UUID) string {
	return presenceKeyPrefix + userID.String()
}

// SetUserPresence records a user's online status with a TTL.
func SetUserPresence(userID uuid.UUID, username, status string) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	presence := PresenceData{
		UserID:    userID,
		Username:  username,
		Status:    status,
		LastSeen:  time.Now(),
		Connected: status == "online",
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("marshal presence: %w", err)
	}

	if err := client.Set(ctx, presenceKey(userID), data, presenceTTL).Err(); err != nil {
		return fmt.Errorf("set presence: %w", err)
	}

	if status == "online" {
		err = client.SAdd(ctx, onlineUsersKey, userID.String()).Err()
	} else {
		err = client.SRem(ctx, onlineUsersKey, userID.String()).Err()
	}
	if err != nil {
		return fmt.Errorf("update online set: %w", err)
	}

	return nil
}

// GetUserPresence fetches a user's presence record.
func GetUserPresence(userID uuid.UUID) (*PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	data, err := client.Get(ctx, presenceKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get presence: %w", err)
	}

	var presence PresenceData
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("unmarshal presence: %w", err)
	}

	return &presence, nil
}

// IsUserOnline reports whether a presence record currently exists.
func IsUserOnline(userID uuid.UUID) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	exists, err := client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check presence: %w", err)
	}
	return exists > 0, nil
}

// RefreshUserPresence extends the TTL of an existing presence record.
func RefreshUserPresence(userID uuid.UUID) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	ok, err := client.Expire(ctx, presenceKey(userID), presenceTTL).Result()
	if err != nil {
		return fmt.Errorf("refresh presence: %w", err)
	}
	if !ok {
		return fmt.Errorf("user is not online")
	}
	return nil
}

// RemoveUserPresence drops a user's presence record and online-set entry.
func RemoveUserPresence(userID uuid.UUID) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	if err := client.Del(ctx, presenceKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete presence: %w", err)
	}
	if err := client.SRem(ctx, onlineUsersKey, userID.String()).Err(); err != nil {
		return fmt.Errorf("remove from online set: %w", err)
	}
	return nil
}

// GetOnlineUsers lists user ids with a live presence record. Stale set
// members whose TTL already fired are dropped on the way.
func GetOnlineUsers() ([]PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	members, err := client.SMembers(ctx, onlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list online users: %w", err)
	}

	var presences []PresenceData
	for _, member := range members {
		userID, err := uuid.Parse(member)
		if err != nil {
			client.SRem(ctx, onlineUsersKey, member)
			continue
		}
		presence, err := GetUserPresence(userID)
		if err != nil {
			client.SRem(ctx, onlineUsersKey, member)
			continue
		}
		presences = append(presences, *presence)
	}

	return presences, nil
}
