package types

import (
	"time"

	"github.com/tonshowcase/showcase/internal/database/models"
	"github.com/tonshowcase/showcase/internal/ownership"
)

type ConnectWalletRequest struct {
	TelegramID    int64  `json:"telegram_id" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	InitData      string `json:"init_data"`
}

type ConnectWalletResponse struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type CreateShowcaseRequest struct {
	TelegramID  int64  `json:"telegram_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=128"`
	Description string `json:"description" binding:"max=2048"`
}

type AddNftsRequest struct {
	NftAddresses []string `json:"nft_addresses" binding:"required,min=1,max=100,dive,required"`
}

type NftsResponse struct {
	Nfts      []ownership.Nft `json:"nfts"`
	FetchedAt time.Time       `json:"fetched_at"`
}
