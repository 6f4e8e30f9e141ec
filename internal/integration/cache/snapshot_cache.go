// Package cache stores derived dashboard state in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

const snapshotKeyPrefix = "dashboard:snapshot:"

// DefaultSnapshotTTL bounds how long a snapshot may outlive a missed invalidation.
const DefaultSnapshotTTL = 5 * time.Minute

// snapshotCache implements adapter.SnapshotCache on Redis.
type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a Redis backed snapshot cache.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) adapter.SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &snapshotCache{
		client: client,
		ttl:    ttl,
	}
}

// SnapshotKey returns the Redis key holding a user's snapshot.
func SnapshotKey(userID uuid.UUID) string {
	return snapshotKeyPrefix + userID.String()
}

type cachedRecord struct {
	ID        uuid.UUID       `json:"id"`
	Text      string          `json:"text"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type cachedSnapshot struct {
	UserID   uuid.UUID      `json:"user_id"`
	LoadedAt time.Time      `json:"loaded_at"`
	Records  []cachedRecord `json:"records"`
}

// Get returns the cached snapshot or adapter.ErrSnapshotMiss.
func (c *snapshotCache) Get(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	payload, err := c.client.Get(ctx, SnapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, adapter.ErrSnapshotMiss
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var cached cachedSnapshot
	if err := json.Unmarshal(payload, &cached); err != nil {
		// A corrupt entry behaves like a miss and is overwritten by the next load.
		return nil, adapter.ErrSnapshotMiss
	}
	return cached.toEntity(), nil
}

// Set stores the snapshot of a user.
func (c *snapshotCache) Set(ctx context.Context, snapshot *entity.RecordSnapshot) error {
	payload, err := json.Marshal(snapshotToCache(snapshot))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey(snapshot.UserID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Delete drops the cached snapshot of a user.
func (c *snapshotCache) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, SnapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func snapshotToCache(snapshot *entity.RecordSnapshot) cachedSnapshot {
	records := make([]cachedRecord, len(snapshot.Records))
	for i, r := range snapshot.Records {
		records[i] = cachedRecord{
			ID:        r.ID,
			Text:      r.Text,
			Amount:    r.Amount,
			Category:  r.Category,
			Type:      string(r.Type),
			Date:      r.Date,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return cachedSnapshot{
		UserID:   snapshot.UserID,
		LoadedAt: snapshot.LoadedAt,
		Records:  records,
	}
}

func (c cachedSnapshot) toEntity() *entity.RecordSnapshot {
	records := make([]*entity.Record, len(c.Records))
	for i, r := range c.Records {
		records[i] = &entity.Record{
			ID:        r.ID,
			UserID:    c.UserID,
			Text:      r.Text,
			Amount:    r.Amount,
			Category:  r.Category,
			Type:      entity.RecordType(r.Type),
			Date:      r.Date.UTC(),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return &entity.RecordSnapshot{
		UserID:   c.UserID,
		Records:  records,
		LoadedAt: c.LoadedAt,
	}
}
