package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tonshowcase/showcase/internal/api/auth"
	"github.com/tonshowcase/showcase/internal/api/types"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/database/models"
)

func CreateShowcaseHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateShowcaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		caller, _ := auth.TelegramID(c)
		if caller != req.TelegramID {
			respondError(c, app.Log, ErrForbidden)
			return
		}

		if _, err := app.UserRepo.GetUserById(c.Request.Context(), req.TelegramID); err != nil {
			respondError(c, app.Log, err)
			return
		}

		showcase := &models.Showcase{
			OwnerID:     req.TelegramID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
		}
		if err := app.ShowcaseRepo.CreateShowcase(c.Request.Context(), showcase); err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusCreated, showcase)
	}
}

func ListUserShowcasesHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, err := parseInt64Param(c, "telegram_id")
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		showcases, err := app.ShowcaseRepo.ListByOwner(c.Request.Context(), telegramID)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusOK, showcases)
	}
}

func GetShowcaseHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseUintParam(c, "id")
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		showcase, err := app.ShowcaseRepo.GetShowcaseByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusOK, showcase)
	}
}

// AddNftsHandler copies the current metadata of each requested NFT from the
// owner's durable snapshot into the showcase.
func AddNftsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		showcase, ok := ownedShowcase(c, app)
		if !ok {
			return
		}

		var req types.AddNftsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		owner, err := app.UserRepo.GetUserById(c.Request.Context(), showcase.OwnerID)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}
		if owner.WalletAddress == "" {
			respondError(c, app.Log, ErrNoWallet)
			return
		}

		snapshot, err := app.UserNfts.Get(c.Request.Context(), owner.WalletAddress)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		rows := make([]models.ShowcaseNft, 0, len(req.NftAddresses))
		for _, addr := range req.NftAddresses {
			nft, found := snapshot.Find(addr)
			if !found {
				respondError(c, app.Log, fmt.Errorf("%w: %s", ErrNotOwned, addr))
				return
			}
			rows = append(rows, models.ShowcaseNft{
				NftAddress:     nft.Address,
				Name:           nft.Name,
				Description:    nft.Description,
				Image:          nft.Image,
				CollectionName: nft.CollectionName,
			})
		}

		if err := app.ShowcaseRepo.AddNfts(c.Request.Context(), showcase.ID, rows); err != nil {
			respondError(c, app.Log, err)
			return
		}

		updated, err := app.ShowcaseRepo.GetShowcaseByID(c.Request.Context(), showcase.ID)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteShowcaseHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		showcase, ok := ownedShowcase(c, app)
		if !ok {
			return
		}

		if err := app.ShowcaseRepo.DeleteShowcase(c.Request.Context(), showcase.ID); err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// ExportCollageHandler streams the showcase rendered as one PNG.
func ExportCollageHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseUintParam(c, "id")
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		showcase, err := app.ShowcaseRepo.GetShowcaseByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		images := make([]string, 0, len(showcase.Nfts))
		for _, nft := range showcase.Nfts {
			if nft.Image != "" {
				images = append(images, nft.Image)
			}
		}
		if len(images) == 0 {
			respondError(c, app.Log, ErrEmptyShowcase)
			return
		}

		body, err := app.Collage.Export(c.Request.Context(), images)
		if err != nil {
			app.Log.WithFields(logrus.Fields{
				"showcase_id": id,
				"images":      len(images),
			}).WithError(err).Warn("collage export failed")
			respondError(c, app.Log, err)
			return
		}
		defer body.Close()

		c.DataFromReader(http.StatusOK, -1, "image/png", body, map[string]string{
			"Content-Disposition": "attachment; filename=collage.png",
		})
	}
}

// ownedShowcase loads the :id showcase and checks the caller owns it. It
// writes the error response itself.
func ownedShowcase(c *gin.Context, app *container.AppContainer) (*models.Showcase, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, app.Log, err)
		return nil, false
	}

	showcase, err := app.ShowcaseRepo.GetShowcaseByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, app.Log, err)
		return nil, false
	}

	caller, _ := auth.TelegramID(c)
	if caller != showcase.OwnerID {
		respondError(c, app.Log, ErrForbidden)
		return nil, false
	}

	return showcase, true
}
