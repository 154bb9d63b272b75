package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tonshowcase/showcase/internal/api/routes"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/middleware"
)

// NewRouter builds the HTTP handler. The returned stop function ends the rate
// limiter's background cleanup.
func NewRouter(app *container.AppContainer) (*gin.Engine, func()) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(app.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(app.Config.RateLimitRPS, app.Config.RateLimitBurst, app.Log)
	stop := make(chan struct{})
	limiter.StartCleanup(time.Minute, 10*time.Minute, stop)

	routes.RegisterRoutes(router, app, limiter)

	return router, func() { close(stop) }
}

// StartApi serves until ctx is cancelled, then shuts down gracefully.
func StartApi(ctx context.Context, app *container.AppContainer) error {
	router, stopRouter := NewRouter(app)
	defer stopRouter()

	srv := &http.Server{
		Addr:              app.Config.APIAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("🌐 API listening on %s", app.Config.APIAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Log.Info("🔻 shutting down API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
