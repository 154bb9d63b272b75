package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonshowcase/showcase/internal/ownership"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestStore(t *testing.T) (*SnapshotStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	return NewSnapshotStore(rdb), mr
}

func TestSnapshotStoreNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "EQmissing")
	assert.ErrorIs(t, err, ownership.ErrNotFound)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	want := &ownership.Snapshot{
		Key: "EQwallet",
		Items: []ownership.Nft{
			{Address: "0:a", Name: "A", Image: "https://a.png", CollectionName: "C"},
			{Address: "0:b", Name: "B", Description: "b", CollectionName: "C"},
		},
		FetchedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, "EQwallet")
	require.NoError(t, err)
	assert.Equal(t, want.Items, got.Items)
	assert.True(t, want.FetchedAt.Equal(got.FetchedAt))

	assert.True(t, mr.Exists("nft_snapshot:EQwallet"))
	assert.Zero(t, mr.TTL("nft_snapshot:EQwallet"))
}

func TestSnapshotStoreReplaces(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &ownership.Snapshot{Key: "EQw", Items: []ownership.Nft{{Address: "1"}, {Address: "2"}}}))
	require.NoError(t, store.Put(ctx, &ownership.Snapshot{Key: "EQw", Items: []ownership.Nft{{Address: "3"}}}))

	got, err := store.Get(ctx, "EQw")
	require.NoError(t, err)
	assert.Equal(t, []ownership.Nft{{Address: "3"}}, got.Items)
}

func TestSnapshotStoreCorruptValue(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("nft_snapshot:EQbad", "{not json"))

	_, err := store.Get(context.Background(), "EQbad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ownership.ErrNotFound)
}

func TestSnapshotStoreBacksCache(t *testing.T) {
	store, _ := newTestStore(t)
	calls := 0
	src := ownership.SourceFunc(func(context.Context, string, int) ([]ownership.RawRecord, error) {
		calls++
		return []ownership.RawRecord{{
			Address:    "0:a",
			Metadata:   &ownership.RawMetadata{Name: "A"},
			Collection: &ownership.RawCollection{Name: "C"},
		}}, nil
	})

	c := ownership.New(store, src, ownership.Config{Name: "redis", Window: 5 * time.Minute}, quietLogger())

	for i := 0; i < 3; i++ {
		snap, err := c.Get(context.Background(), "EQw")
		require.NoError(t, err)
		assert.Len(t, snap.Items, 1)
	}
	assert.Equal(t, 1, calls)
}

func TestHealthCheck(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, HealthCheck(context.Background(), client))

	mr.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, HealthCheck(ctx, client))
}
