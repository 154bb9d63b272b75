package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tonshowcase/showcase/internal/cache"
	"github.com/tonshowcase/showcase/internal/container"
)

const healthTimeout = 2 * time.Second

// HealthHandler pings the database and, when configured, Redis.
func HealthHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		checks := gin.H{}
		healthy := true

		if err := pingDB(ctx, app); err != nil {
			app.Log.WithError(err).Warn("health: database unreachable")
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if app.Redis != nil {
			if err := cache.HealthCheck(ctx, app.Redis); err != nil {
				app.Log.WithError(err).Warn("health: redis unreachable")
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "checks": checks})
	}
}

func pingDB(ctx context.Context, app *container.AppContainer) error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
