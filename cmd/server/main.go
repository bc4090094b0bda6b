package main

import (
	"context"

	"github.com/amity-dating/amity/internal/app"
	"github.com/amity-dating/amity/internal/cache"
	"github.com/amity-dating/amity/internal/config"
	"github.com/amity-dating/amity/internal/db"
	"github.com/amity-dating/amity/internal/idcodec"
	"github.com/amity-dating/amity/internal/logger"
	"github.com/amity-dating/amity/internal/matching"
	"github.com/amity-dating/amity/internal/media"
	"github.com/amity-dating/amity/internal/server"
	"github.com/amity-dating/amity/internal/service/auth"
	"github.com/amity-dating/amity/internal/service/profile"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Opaque id codec
	codec, err := idcodec.New(cfg.Codec.Key)
	if err != nil {
		log.Error("failed to init id codec", "err", err)
		return
	}

	// Media URLs: plain domain links, presigned verification pictures on S3
	var mediaURLs profile.MediaURLs = media.NewBuilder(cfg.App.Domain)
	if cfg.S3.Enabled {
		signer, err := media.NewS3Signer(context.Background(), cfg)
		if err != nil {
			log.Error("failed to init s3 signer", "err", err)
			return
		}
		mediaURLs = signer
	}

	appCtx := app.New(database, redisCache, log, cfg)

	registrars := []server.Registrar{
		auth.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx, codec, mediaURLs, matching.NewPolicy()),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
