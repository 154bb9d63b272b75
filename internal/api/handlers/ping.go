package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tonshowcase/showcase/internal/container"
)

func PingHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := map[string]any{
			"ping":        "pong",
			"bypass_mode": app.Verifier.Bypass(),
		}
		c.JSON(http.StatusOK, res)
	}
}
