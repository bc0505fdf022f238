package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/browse"
	"github.com/talentbridge/marketplace-web/internal/cache"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/infrastructure/config"
	"github.com/talentbridge/marketplace-web/internal/session"
	"github.com/talentbridge/marketplace-web/internal/web"
	"github.com/talentbridge/marketplace-web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional: the reference cache degrades to direct backend
	// fetches when it is unreachable.
	rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, reference cache disabled")
		rdb = nil
	}

	api := backend.New(cfg.BackendURL, logger.With("backend"))
	ref := cache.NewReference(rdb, api, cfg.Redis.ReferenceTTL, logger.With("cache"))
	sessions := session.NewStore(cfg.SessionSecret, cfg.Env != "development")

	browseLog := logger.With("browse")
	jobs := browse.NewRegistry(func() *browse.Controller[domain.Job] {
		return browse.NewController("jobs", api.Jobs, cfg.Browse.Debounce, browseLog)
	}, 0)
	workers := browse.NewRegistry(func() *browse.Controller[domain.WorkerProfile] {
		return browse.NewController("workers", api.Workers, cfg.Browse.Debounce, browseLog)
	}, 0)

	e, err := web.NewRouter(web.Deps{
		API:      api,
		Ref:      ref,
		Sessions: sessions,
		Jobs:     jobs,
		Workers:  workers,
		Redis:    rdb,
		Log:      logger.With("handler"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendURL).Msg("starting marketplace web gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
