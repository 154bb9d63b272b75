package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/tonshowcase/showcase/internal/database/models"
	"github.com/tonshowcase/showcase/internal/ownership"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository is the durable ownership.Store, one nft_cache row per
// wallet.
type SnapshotRepository struct {
	db *gorm.DB
}

var _ ownership.Store = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Get(ctx context.Context, key string) (*ownership.Snapshot, error) {
	var row models.NftCache
	err := r.db.WithContext(ctx).First(&row, "owner_wallet_address = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownership.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	items := row.NftData
	if items == nil {
		items = []ownership.Nft{}
	}

	return &ownership.Snapshot{
		Key:       row.OwnerWalletAddress,
		Items:     items,
		FetchedAt: row.CachedAt,
	}, nil
}

func (r *SnapshotRepository) Put(ctx context.Context, snapshot *ownership.Snapshot) error {
	row := models.NftCache{
		OwnerWalletAddress: snapshot.Key,
		NftData:            snapshot.Items,
		CachedAt:           snapshot.FetchedAt,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_wallet_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"nft_data", "cached_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}
