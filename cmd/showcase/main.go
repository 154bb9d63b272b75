package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tonshowcase/showcase/internal/api"
	"github.com/tonshowcase/showcase/internal/cache"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/database"
	"github.com/tonshowcase/showcase/internal/telegram"
	"github.com/tonshowcase/showcase/internal/tonapi"
	"github.com/tonshowcase/showcase/pkg/config"
	"github.com/tonshowcase/showcase/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logger.New(cfg.LogLevel)

	if cfg.SecretKey == "" {
		cfg.SecretKey = randomSecret()
		log.Warn("⚠️ SECRET_KEY not set, using a random key; tokens will not survive a restart")
	}
	if cfg.TelegramBotToken == "" {
		log.Warn("⚠️ TELEGRAM_BOT_TOKEN not set, init data is NOT verified (bypass mode)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, wallet cache kept in memory")
			rdb = nil
		} else {
			defer rdb.Close()
			log.Infof("✅ connected to redis at %s", cfg.RedisAddr)
		}
	}

	source := tonapi.NewClient(tonapi.Config{
		BaseURL: cfg.TonAPIURL,
		APIKey:  cfg.TonAPIKey,
		Timeout: cfg.NftFetchTimeout,
	})

	app := container.NewAppContainer(cfg, db, rdb, source, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return api.StartApi(ctx, app) })
	g.Go(func() error { return telegram.StartBot(ctx, app) })

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("shutdown with error")
	}
	log.Info("👋 bye")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
