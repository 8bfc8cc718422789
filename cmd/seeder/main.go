// Command seeder loads a venue fixture file into the configured store as
// the initial snapshot. It refuses to clobber existing venues unless
// SEED_FORCE=1.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"pitchside/internal/adapters/observability"
	"pitchside/internal/domain"
	"pitchside/internal/shared"
	filestore "pitchside/internal/storage/file"
	mysqlstore "pitchside/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	b, err := os.ReadFile(cfg.SeedPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedPath).Msg("read seed file failed")
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedPath).Msg("parse seed file failed")
	}
	for i := range snap.Venues {
		if snap.Venues[i].Reviews == nil {
			snap.Venues[i].Reviews = []domain.Review{}
		}
	}

	store := openStore(cfg)

	if !cfg.SeedForce {
		existing, err := store.Load(ctx)
		switch {
		case err == nil && len(existing.Venues) > 0:
			log.Fatal().Int("venues", len(existing.Venues)).
				Msg("store already seeded; set SEED_FORCE=1 to overwrite")
		case err != nil && !errors.Is(err, domain.ErrStoreUnavailable):
			log.Fatal().Err(err).Msg("inspect existing snapshot failed")
		}
	}

	if err := store.Save(ctx, snap); err != nil {
		log.Fatal().Err(err).Msg("save seed snapshot failed")
	}
	log.Info().Int("venues", len(snap.Venues)).Str("backend", cfg.StoreBackend).Msg("seed complete")
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
		return mysqlstore.New(db)
	case "file":
		return filestore.New(cfg.DataPath)
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
		return nil
	}
}
