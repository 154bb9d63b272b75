package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tonshowcase/showcase/internal/api/types"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/database/models"
)

// ConnectWalletHandler links a wallet to a Telegram user. The init data is
// authenticated before anything is written.
func ConnectWalletHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ConnectWalletRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		if !validWallet(req.WalletAddress) {
			respondError(c, app.Log, ErrInvalidWallet)
			return
		}

		payload, err := app.Verifier.Verify(req.InitData)
		if err != nil {
			app.Log.WithFields(logrus.Fields{
				"telegram_id": req.TelegramID,
				"client":      c.ClientIP(),
			}).WithError(err).Warn("connect_wallet rejected")
			respondError(c, app.Log, err)
			return
		}

		if payload != nil {
			claim, ok, err := payload.User()
			if err != nil {
				respondError(c, app.Log, fmt.Errorf("%w: %v", ErrIdentityClaims, err))
				return
			}
			switch {
			case ok && claim.ID != req.TelegramID:
				respondError(c, app.Log, ErrIdentityClaims)
				return
			case !ok && !app.Verifier.Bypass():
				respondError(c, app.Log, fmt.Errorf("%w: user claim missing", ErrIdentityClaims))
				return
			}
		}

		user := &models.User{
			TelegramID:    req.TelegramID,
			WalletAddress: req.WalletAddress,
			Username:      req.Username,
			FirstName:     req.FirstName,
		}
		if err := app.UserRepo.UpsertUser(c.Request.Context(), user); err != nil {
			respondError(c, app.Log, err)
			return
		}

		saved, err := app.UserRepo.GetUserById(c.Request.Context(), req.TelegramID)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		token, expiresAt, err := app.Tokens.GenerateTokenJWT(req.TelegramID)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		app.Log.WithFields(logrus.Fields{
			"telegram_id": req.TelegramID,
			"wallet":      saved.WalletAddress,
		}).Info("wallet connected")

		c.JSON(http.StatusOK, types.ConnectWalletResponse{
			Status:    "success",
			Message:   "wallet connected",
			Token:     token,
			ExpiresAt: expiresAt,
			User:      saved,
		})
	}
}

func VerifyJWTHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"valid": false,
				"error": "token not provided",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := app.Tokens.ValidateTokenJWT(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"valid": false,
				"error": "invalid token",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":       true,
			"telegram_id": claims.TelegramID,
			"expires_at":  claims.ExpiresAt.Time,
		})
	}
}
