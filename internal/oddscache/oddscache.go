// Package oddscache caches bookmaker odds snapshots in Redis so the
// analysis endpoints can score fixtures without a request body.
package oddscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// Snapshot TTLs. Pre-match odds move slowly; a short TTL keeps stale
// quotes from leaking into fresh analyses.
const (
	SnapshotTTL = 15 * time.Minute
)

// Cache reads and writes odds snapshots keyed by fixture.
type Cache struct {
	client *redis.Client
}

// New creates a cache around an existing Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func snapshotKey(matchID string) string {
	return fmt.Sprintf("odds:snapshot:%s", matchID)
}

// WriteSnapshot stores the odds snapshot for a fixture.
func (c *Cache) WriteSnapshot(ctx context.Context, snapshot *models.OddsSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return c.client.Set(ctx, snapshotKey(snapshot.MatchID), data, SnapshotTTL).Err()
}

// GetOddsSnapshot retrieves the cached snapshot for a fixture. Returns
// (nil, nil) on a cache miss, which satisfies contracts.OddsProvider.
func (c *Cache) GetOddsSnapshot(ctx context.Context, matchID string) (*models.OddsSnapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(matchID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot models.OddsSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.MatchID == "" {
		snapshot.MatchID = matchID
	}

	return &snapshot, nil
}

// Invalidate drops the cached snapshot for a fixture.
func (c *Cache) Invalidate(ctx context.Context, matchID string) error {
	return c.client.Del(ctx, snapshotKey(matchID)).Err()
}
