// Package file persists the snapshot as a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pitchside/internal/adapters/observability"
	"pitchside/internal/domain"
)

type Store struct{ path string }

func New(path string) *Store { return &Store{path: path} }

// Load reads and decodes the whole document. A missing, unreadable or
// malformed file surfaces as domain.ErrStoreUnavailable; it is never
// papered over with an empty snapshot.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx)
	observability.ObserveStore("file", "load", err, time.Since(start))
	return snap, err
}

func (s *Store) load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: read %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: parse %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	if err := validate(snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	normalize(&snap)
	return snap, nil
}

// Save overwrites the document wholesale: marshal, write a sibling temp
// file, fsync, rename. A failed save never leaves a half-written document
// at the real path.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	start := time.Now()
	err := s.save(ctx, snap)
	observability.ObserveStore("file", "save", err, time.Since(start))
	return err
}

func (s *Store) save(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalize(&snap)
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", domain.ErrStoreUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", domain.ErrStoreUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", domain.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: rename: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func validate(snap domain.Snapshot) error {
	seen := make(map[string]struct{}, len(snap.Venues))
	for _, v := range snap.Venues {
		if v.ID == "" {
			return fmt.Errorf("venue with empty id")
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("duplicate venue id %q", v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}

// normalize keeps the never-null invariants: reviews and photos marshal
// as [] rather than null.
func normalize(snap *domain.Snapshot) {
	if snap.Venues == nil {
		snap.Venues = []domain.Venue{}
	}
	for i := range snap.Venues {
		if snap.Venues[i].Reviews == nil {
			snap.Venues[i].Reviews = []domain.Review{}
		}
		for j := range snap.Venues[i].Reviews {
			if snap.Venues[i].Reviews[j].Photos == nil {
				snap.Venues[i].Reviews[j].Photos = []string{}
			}
		}
	}
}
