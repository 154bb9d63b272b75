// Package cache stores ownership snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tonshowcase/showcase/internal/ownership"
)

const keyPrefix = "nft_snapshot:"

// SnapshotStore keeps one JSON snapshot per wallet. Keys carry no TTL: the
// ownership cache decides freshness and needs stale entries as a fallback.
type SnapshotStore struct {
	client *redis.Client
	prefix string
}

var _ ownership.Store = (*SnapshotStore)(nil)

func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client, prefix: keyPrefix}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) (*ownership.Snapshot, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ownership.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}

	var snap ownership.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

func (s *SnapshotStore) Put(ctx context.Context, snapshot *ownership.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+snapshot.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store in cache: %w", err)
	}
	return nil
}
