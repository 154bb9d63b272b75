package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tonshowcase/showcase/internal/api/types"
	"github.com/tonshowcase/showcase/internal/container"
)

// GetWalletNftsHandler serves the short-lived per-wallet cache.
func GetWalletNftsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.Param("wallet_address")
		if !validWallet(wallet) {
			respondError(c, app.Log, ErrInvalidWallet)
			return
		}

		snapshot, err := app.WalletNfts.Get(c.Request.Context(), wallet)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusOK, types.NftsResponse{Nfts: snapshot.Items, FetchedAt: snapshot.FetchedAt})
	}
}

// GetUserNftsHandler resolves the user's connected wallet and serves the
// durable per-user cache.
func GetUserNftsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, err := parseInt64Param(c, "telegram_id")
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		user, err := app.UserRepo.GetUserById(c.Request.Context(), telegramID)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}
		if user.WalletAddress == "" {
			respondError(c, app.Log, ErrNoWallet)
			return
		}

		snapshot, err := app.UserNfts.Get(c.Request.Context(), user.WalletAddress)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusOK, types.NftsResponse{Nfts: snapshot.Items, FetchedAt: snapshot.FetchedAt})
	}
}
