package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tonshowcase/showcase/internal/api/auth"
	"github.com/tonshowcase/showcase/internal/api/handlers"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/metrics"
	"github.com/tonshowcase/showcase/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, c *container.AppContainer, limiter *middleware.RateLimiter) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", handlers.HealthHandler(c))

	api := r.Group("/api")
	{
		api.GET("/ping", handlers.PingHandler(c))

		api.POST("/connect_wallet", handlers.ConnectWalletHandler(c))
		api.GET("/auth/verify", handlers.VerifyJWTHandler(c))

		api.GET("/profile/:telegram_id", handlers.GetProfileHandler(c))
		api.GET("/search/users", handlers.SearchUsersHandler(c))

		api.GET("/nfts/:wallet_address", limiter.Handler(), handlers.GetWalletNftsHandler(c))

		users := api.Group("/users/:telegram_id")
		{
			users.GET("/nfts", limiter.Handler(), handlers.GetUserNftsHandler(c))
			users.GET("/showcases", handlers.ListUserShowcasesHandler(c))
		}

		api.GET("/showcases/:id", handlers.GetShowcaseHandler(c))
		api.POST("/showcases/:id/export", limiter.Handler(), handlers.ExportCollageHandler(c))

		authed := api.Group("/", auth.AuthMiddlewareJWT(c.Tokens))
		{
			authed.POST("/showcases", handlers.CreateShowcaseHandler(c))
			authed.POST("/showcases/:id/nfts", handlers.AddNftsHandler(c))
			authed.DELETE("/showcases/:id", handlers.DeleteShowcaseHandler(c))
		}
	}
}
