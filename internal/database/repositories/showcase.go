package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/tonshowcase/showcase/internal/database/models"
	"gorm.io/gorm"
)

var ErrShowcaseNotFound = errors.New("showcase not found")

type ShowcaseRepository struct {
	db *gorm.DB
}

func NewShowcaseRepository(db *gorm.DB) *ShowcaseRepository {
	return &ShowcaseRepository{db: db}
}

func (r *ShowcaseRepository) CreateShowcase(ctx context.Context, showcase *models.Showcase) error {
	if showcase == nil {
		return fmt.Errorf("showcase must not be nil")
	}

	if err := r.db.WithContext(ctx).Create(showcase).Error; err != nil {
		return fmt.Errorf("failed to create showcase: %w", err)
	}
	if showcase.Nfts == nil {
		showcase.Nfts = []models.ShowcaseNft{}
	}

	return nil
}

func (r *ShowcaseRepository) GetShowcaseByID(ctx context.Context, id uint) (*models.Showcase, error) {
	var showcase models.Showcase
	err := r.db.WithContext(ctx).
		Preload("Nfts", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&showcase, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowcaseNotFound
		}
		return nil, err
	}
	if showcase.Nfts == nil {
		showcase.Nfts = []models.ShowcaseNft{}
	}

	return &showcase, nil
}

func (r *ShowcaseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Showcase, error) {
	showcases := make([]models.Showcase, 0)
	err := r.db.WithContext(ctx).
		Preload("Nfts", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&showcases).Error
	if err != nil {
		return nil, err
	}

	for i := range showcases {
		if showcases[i].Nfts == nil {
			showcases[i].Nfts = []models.ShowcaseNft{}
		}
	}

	return showcases, nil
}

func (r *ShowcaseRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Showcase{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// AddNfts appends nfts to the showcase, skipping addresses already in it.
func (r *ShowcaseRepository) AddNfts(ctx context.Context, showcaseID uint, nfts []models.ShowcaseNft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&models.ShowcaseNft{}).
			Where("showcase_id = ?", showcaseID).
			Pluck("nft_address", &existing).Error; err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(existing))
		for _, addr := range existing {
			seen[addr] = struct{}{}
		}

		var toInsert []models.ShowcaseNft
		for _, nft := range nfts {
			if _, ok := seen[nft.NftAddress]; ok {
				continue
			}
			seen[nft.NftAddress] = struct{}{}
			nft.ID = 0
			nft.ShowcaseID = showcaseID
			toInsert = append(toInsert, nft)
		}

		if len(toInsert) == 0 {
			return nil
		}
		return tx.Create(&toInsert).Error
	})
}

func (r *ShowcaseRepository) DeleteShowcase(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("showcase_id = ?", id).Delete(&models.ShowcaseNft{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Showcase{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrShowcaseNotFound
		}
		return nil
	})
}
