package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"pitchside/internal/adapters/blob"
	server "pitchside/internal/adapters/http_server"
	"pitchside/internal/adapters/observability"
	redisad "pitchside/internal/adapters/redis"
	"pitchside/internal/app"
	"pitchside/internal/domain"
	"pitchside/internal/shared"
	filestore "pitchside/internal/storage/file"
	mysqlstore "pitchside/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	store := openStore(cfg)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
	}

	blobs, err := blob.NewDiskStore(cfg.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadsDir).Msg("uploads dir unavailable")
	}

	q := app.NewQueryService(store, cache, cfg.CacheTTL)
	rsvc := app.NewReviewService(store, cache)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.ServeUploads(blobs.Dir())

	var limiter *rate.Limiter
	if cfg.ReviewRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.ReviewRPS), cfg.ReviewRPS)
	}
	srv.MountHandlers(&server.Handlers{Q: q, R: rsvc, Blobs: blobs, Limit: limiter})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.StoreBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func openStore(cfg shared.Config) domain.Store {
	switch cfg.StoreBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlstore.New(db)
	case "file":
		return filestore.New(cfg.DataPath)
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
		return nil
	}
}
