// Package mysql is the MySQL-backed snapshot store. It keeps the same
// whole-document semantics as the file store: Load materializes every
// venue and review, Save replaces the lot inside one transaction.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pitchside/internal/adapters/observability"
	"pitchside/internal/domain"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx)
	observability.ObserveStore("mysql", "load", err, time.Since(start))
	return snap, err
}

func (s *Store) load(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot

	rows, err := s.db.QueryContext(ctx, selectVenuesSQL)
	if err != nil {
		return domain.Snapshot{}, storeErr("select venues", err)
	}
	defer rows.Close()

	index := map[string]int{}
	snap.Venues = []domain.Venue{}
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.Coords.Lat, &v.Coords.Lon); err != nil {
			return domain.Snapshot{}, storeErr("scan venue", err)
		}
		v.Reviews = []domain.Review{}
		index[v.ID] = len(snap.Venues)
		snap.Venues = append(snap.Venues, v)
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, storeErr("iterate venues", err)
	}

	rrows, err := s.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return domain.Snapshot{}, storeErr("select reviews", err)
	}
	defer rrows.Close()

	for rrows.Next() {
		var (
			venueID    string
			rv         domain.Review
			photosJSON []byte
		)
		if err := rrows.Scan(&venueID, &rv.ID, &rv.Author, &rv.Text,
			&rv.Ratings.Bathrooms, &rv.Ratings.Food, &rv.Ratings.Parking, &rv.Ratings.Fields,
			&photosJSON, &rv.CreatedAt); err != nil {
			return domain.Snapshot{}, storeErr("scan review", err)
		}
		if err := json.Unmarshal(photosJSON, &rv.Photos); err != nil {
			return domain.Snapshot{}, storeErr("decode photos", err)
		}
		if rv.Photos == nil {
			rv.Photos = []string{}
		}
		i, ok := index[venueID]
		if !ok {
			return domain.Snapshot{}, storeErr("orphan review", fmt.Errorf("review %s references unknown venue %s", rv.ID, venueID))
		}
		snap.Venues[i].Reviews = append(snap.Venues[i].Reviews, rv)
	}
	if err := rrows.Err(); err != nil {
		return domain.Snapshot{}, storeErr("iterate reviews", err)
	}
	return snap, nil
}

func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	start := time.Now()
	err := s.save(ctx, snap)
	observability.ObserveStore("mysql", "save", err, time.Since(start))
	return err
}

func (s *Store) save(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteReviewsSQL); err != nil {
		return storeErr("clear reviews", err)
	}
	if _, err := tx.ExecContext(ctx, deleteVenuesSQL); err != nil {
		return storeErr("clear venues", err)
	}

	for pos, v := range snap.Venues {
		if _, err := tx.ExecContext(ctx, insertVenueSQL,
			v.ID, v.Name, v.City, v.Coords.Lat, v.Coords.Lon, pos); err != nil {
			return storeErr("insert venue", err)
		}
		for rpos, rv := range v.Reviews {
			photos := rv.Photos
			if photos == nil {
				photos = []string{}
			}
			pj, err := json.Marshal(photos)
			if err != nil {
				return storeErr("encode photos", err)
			}
			if _, err := tx.ExecContext(ctx, insertReviewSQL,
				rv.ID, v.ID, rpos, rv.Author, rv.Text,
				rv.Ratings.Bathrooms, rv.Ratings.Food, rv.Ratings.Parking, rv.Ratings.Fields,
				string(pj), rv.CreatedAt); err != nil {
				return storeErr("insert review", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: mysql %s: %v", domain.ErrStoreUnavailable, op, err)
}
