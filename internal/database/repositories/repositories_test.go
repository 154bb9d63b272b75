package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tonshowcase/showcase/internal/database"
	"github.com/tonshowcase/showcase/internal/database/models"
	"github.com/tonshowcase/showcase/internal/ownership"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestUpsertUser(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.UpsertUser(ctx, &models.User{TelegramID: 42, FirstName: "Ana", Username: "ana", WalletAddress: "EQone"}))
	require.NoError(t, repo.UpsertUser(ctx, &models.User{TelegramID: 42, FirstName: "Ana B", Username: "anab"}))

	user, err := repo.GetUserById(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ana B", user.FirstName)
	assert.Equal(t, "anab", user.Username)
	assert.Equal(t, "EQone", user.WalletAddress, "empty wallet must not clear a connected one")

	require.NoError(t, repo.UpsertUser(ctx, &models.User{TelegramID: 42, FirstName: "Ana B", Username: "anab", WalletAddress: "EQtwo"}))
	user, err = repo.GetUserById(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "EQtwo", user.WalletAddress)
}

func TestGetUserNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetUserById(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	for i, name := range []string{"CryptoCat", "cryptodog", "alice", "bob_crypto", "percent%user"} {
		require.NoError(t, repo.UpsertUser(ctx, &models.User{TelegramID: int64(i + 1), Username: name}))
	}

	users, err := repo.SearchUsers(ctx, "CRYPTO")
	require.NoError(t, err)
	assert.Len(t, users, 3)

	users, err = repo.SearchUsers(ctx, "%")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "percent%user", users[0].Username)

	users, err = repo.SearchUsers(ctx, "  ")
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestSearchUsersLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.UpsertUser(ctx, &models.User{TelegramID: int64(i + 1), Username: fmt.Sprintf("user%02d", i)}))
	}

	users, err := repo.SearchUsers(ctx, "user")
	require.NoError(t, err)
	assert.Len(t, users, searchLimit)
}

func TestShowcaseLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewShowcaseRepository(db)

	sc := &models.Showcase{OwnerID: 42, Title: "Best of", Description: "mine"}
	require.NoError(t, repo.CreateShowcase(ctx, sc))
	require.NotZero(t, sc.ID)
	assert.NotNil(t, sc.Nfts)

	require.NoError(t, repo.AddNfts(ctx, sc.ID, []models.ShowcaseNft{
		{NftAddress: "0:a", Name: "A", Image: "https://a.png"},
		{NftAddress: "0:b", Name: "B"},
	}))
	require.NoError(t, repo.AddNfts(ctx, sc.ID, []models.ShowcaseNft{
		{NftAddress: "0:a", Name: "A again"},
		{NftAddress: "0:c", Name: "C"},
	}))

	got, err := repo.GetShowcaseByID(ctx, sc.ID)
	require.NoError(t, err)
	require.Len(t, got.Nfts, 3)
	assert.Equal(t, "A", got.Nfts[0].Name)
	assert.Equal(t, "0:c", got.Nfts[2].NftAddress)

	list, err := repo.ListByOwner(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Nfts, 3)

	count, err := repo.CountByOwner(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteShowcase(ctx, sc.ID))
	_, err = repo.GetShowcaseByID(ctx, sc.ID)
	assert.ErrorIs(t, err, ErrShowcaseNotFound)
	assert.ErrorIs(t, repo.DeleteShowcase(ctx, sc.ID), ErrShowcaseNotFound)

	var orphans int64
	require.NoError(t, db.Model(&models.ShowcaseNft{}).Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestListByOwnerEmpty(t *testing.T) {
	repo := NewShowcaseRepository(newTestDB(t))

	list, err := repo.ListByOwner(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	_, err := repo.Get(ctx, "EQw")
	assert.ErrorIs(t, err, ownership.ErrNotFound)

	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, &ownership.Snapshot{
		Key:       "EQw",
		Items:     []ownership.Nft{{Address: "0:a", Name: "A"}, {Address: "0:b", Name: "B"}},
		FetchedAt: first,
	}))

	second := first.Add(90 * time.Minute)
	want := []ownership.Nft{{Address: "0:c", Name: "C", Image: "https://c.png", CollectionName: "Col"}}
	require.NoError(t, repo.Put(ctx, &ownership.Snapshot{Key: "EQw", Items: want, FetchedAt: second}))

	got, err := repo.Get(ctx, "EQw")
	require.NoError(t, err)
	assert.Equal(t, want, got.Items)
	assert.True(t, second.Equal(got.FetchedAt))

	_, err = repo.Get(ctx, "eqw")
	assert.ErrorIs(t, err, ownership.ErrNotFound, "keys are case-sensitive")
}

func TestSnapshotRepositoryEmptyItems(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	require.NoError(t, repo.Put(ctx, &ownership.Snapshot{Key: "EQempty", Items: []ownership.Nft{}, FetchedAt: time.Now()}))

	got, err := repo.Get(ctx, "EQempty")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}
