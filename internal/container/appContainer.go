package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tonshowcase/showcase/internal/api/auth"
	"github.com/tonshowcase/showcase/internal/cache"
	"github.com/tonshowcase/showcase/internal/collage"
	"github.com/tonshowcase/showcase/internal/database/repositories"
	"github.com/tonshowcase/showcase/internal/initdata"
	"github.com/tonshowcase/showcase/internal/ownership"
	"github.com/tonshowcase/showcase/pkg/config"
	"gorm.io/gorm"
)

type AppContainer struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *gorm.DB
	// Redis is nil when no Redis is configured.
	Redis *redis.Client

	UserRepo     *repositories.UserRepository
	ShowcaseRepo *repositories.ShowcaseRepository

	Verifier *initdata.Verifier
	Tokens   *auth.TokenManager

	// ## NFT CACHES ## \\
	// WalletNfts answers per-request wallet lookups with a short window.
	// UserNfts is the durable per-user cache with a long window.
	WalletNfts *ownership.Cache
	UserNfts   *ownership.Cache

	Collage collage.Exporter
}

// NewAppContainer wires the application. rdb may be nil, in which case the
// short-lived cache is kept in process memory.
func NewAppContainer(cfg *config.Config, db *gorm.DB, rdb *redis.Client, source ownership.Source, log *logrus.Logger) *AppContainer {
	var walletStore ownership.Store
	if rdb != nil {
		walletStore = cache.NewSnapshotStore(rdb)
	} else {
		walletStore = ownership.NewMemoryStore()
	}

	snapshotRepo := repositories.NewSnapshotRepository(db)

	verifierOpts := []initdata.Option{}
	if cfg.InitDataMaxAge > 0 {
		verifierOpts = append(verifierOpts, initdata.WithMaxAge(cfg.InitDataMaxAge))
	}

	return &AppContainer{
		Config:       cfg,
		Log:          log,
		DB:           db,
		Redis:        rdb,
		UserRepo:     repositories.NewUserRepository(db),
		ShowcaseRepo: repositories.NewShowcaseRepository(db),

		Verifier: initdata.NewVerifier(cfg.TelegramBotToken, log, verifierOpts...),
		Tokens:   auth.NewTokenManager(cfg.SecretKey, 0),

		WalletNfts: ownership.New(walletStore, source, ownership.Config{
			Name:         "wallet",
			Window:       cfg.NftCacheTTL,
			FetchTimeout: cfg.NftFetchTimeout,
			Limit:        cfg.NftFetchLimit,
		}, log),
		UserNfts: ownership.New(snapshotRepo, source, ownership.Config{
			Name:         "user",
			Window:       cfg.UserNftCacheTTL,
			FetchTimeout: cfg.NftFetchTimeout,
			Limit:        cfg.NftFetchLimit,
		}, log),

		Collage: collage.NewClient(cfg.CollageURL, 0),
	}
}
