// internal/store/preferences.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/models"
)

const prefCacheKeyPrefix = "notify:prefs:"

// Preferences reads notification preference rows with a Redis cache in
// front of Postgres. Only found rows are cached; a missing row is
// re-read every time so a newly created preference takes effect
// immediately.
type Preferences struct {
	db    *sql.DB
	cache *redis.Client
	ttl   time.Duration
}

// NewPreferences creates the preference reader. cache may be nil to
// disable caching.
func NewPreferences(db *sql.DB, cache *redis.Client, ttl time.Duration) *Preferences {
	return &Preferences{db: db, cache: cache, ttl: ttl}
}

// Get returns the user's preference row, or (nil, nil) when the user
// has none and the default policy applies.
func (s *Preferences) Get(ctx context.Context, userID string) (*models.NotificationPreference, error) {
	if pref := s.fromCache(ctx, userID); pref != nil {
		return pref, nil
	}

	var pref models.NotificationPreference
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email_enabled, push_enabled, in_app_enabled, order_updates_enabled
		 FROM notification_preferences WHERE user_id = $1`, userID).
		Scan(&pref.UserID, &pref.EmailEnabled, &pref.PushEnabled, &pref.InAppEnabled, &pref.OrderUpdatesEnabled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query notification preferences: %w", err)
	}

	s.toCache(ctx, &pref)
	return &pref, nil
}

func (s *Preferences) fromCache(ctx context.Context, userID string) *models.NotificationPreference {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, prefCacheKeyPrefix+userID).Result()
	if err != nil {
		return nil
	}
	var pref models.NotificationPreference
	if err := json.Unmarshal([]byte(data), &pref); err != nil {
		return nil
	}
	return &pref
}

func (s *Preferences) toCache(ctx context.Context, pref *models.NotificationPreference) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(pref)
	if err != nil {
		return
	}
	// Cache writes are best effort.
	_ = s.cache.Set(ctx, prefCacheKeyPrefix+pref.UserID, data, s.ttl).Err()
}
