package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tonshowcase/showcase/internal/container"
)

func GetProfileHandler(app *container.AppContainer) gin.HandlerFunc {
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

		c.JSON(http.StatusOK, user)
	}
}

func SearchUsersHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.UserRepo.SearchUsers(c.Request.Context(), c.Query("query"))
		if err != nil {
			respondError(c, app.Log, err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func parseInt64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// validWallet reports whether addr can be used as an ownership key as is.
// Keys are never normalized, so padded or empty addresses are refused.
func validWallet(addr string) bool {
	return addr != "" && strings.TrimSpace(addr) == addr
}
