package models

import (
	"time"

	"github.com/tonshowcase/showcase/internal/ownership"
)

type User struct {
	TelegramID    int64      `gorm:"primaryKey;autoIncrement:false" json:"telegram_id"`
	WalletAddress string     `gorm:"index" json:"wallet_address"`
	Username      string     `gorm:"index" json:"username"`
	FirstName     string     `json:"first_name"`
	Showcases     []Showcase `gorm:"foreignKey:OwnerID" json:"showcases,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Showcase is a curated set of NFTs owned by a user.
type Showcase struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	OwnerID     int64         `gorm:"not null;index" json:"owner_id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Nfts        []ShowcaseNft `gorm:"foreignKey:ShowcaseID" json:"nfts"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// ShowcaseNft copies an NFT's metadata at the time it was added, since the
// NFT itself lives on chain.
type ShowcaseNft struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ShowcaseID     uint      `gorm:"not null;index" json:"showcase_id"`
	NftAddress     string    `gorm:"not null" json:"nft_address"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	CollectionName string    `json:"collection_name"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NftCache is the durable ownership snapshot of one wallet.
type NftCache struct {
	OwnerWalletAddress string          `gorm:"primaryKey;type:varchar(128)"`
	NftData            []ownership.Nft `gorm:"serializer:json"`
	CachedAt           time.Time       `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

func (NftCache) TableName() string {
	return "nft_cache"
}
