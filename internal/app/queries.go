package app

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"pitchside/internal/domain"
)

const (
	venueListKey   = "venues:all"
	venueKeyPrefix = "venue:"
)

type QueryService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewQueryService(st domain.Store, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: st, cache: c, cacheTTL: ttl}
}

// snapshot loads the full document, collapsing concurrent loads into one
// read of the backing medium. Nothing is held across calls.
func (s *QueryService) snapshot(ctx context.Context) (domain.Snapshot, error) {
	v, err, _ := s.sf.Do("snapshot", func() (any, error) {
		return s.store.Load(ctx)
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return v.(domain.Snapshot), nil
}

// ListVenues returns one summary per venue in load order. Review bodies
// are never included; averages are recomputed from the live snapshot.
func (s *QueryService) ListVenues(ctx context.Context) ([]domain.VenueSummary, error) {
	var out []domain.VenueSummary
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, venueListKey, &out); ok {
			return out, nil
		}
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]domain.VenueSummary, 0, len(snap.Venues))
	for _, v := range snap.Venues {
		out = append(out, domain.VenueSummary{
			ID:          v.ID,
			Name:        v.Name,
			City:        v.City,
			Coords:      v.Coords,
			AvgRatings:  AverageRatings(v),
			ReviewCount: len(v.Reviews),
		})
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, venueListKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// GetVenue returns the full venue record plus computed averages, or
// domain.ErrNotFound when the id is unknown.
func (s *QueryService) GetVenue(ctx context.Context, id string) (domain.VenueDetail, error) {
	key := venueKeyPrefix + id
	var out domain.VenueDetail
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.VenueDetail{}, err
	}
	v := snap.Find(id)
	if v == nil {
		return domain.VenueDetail{}, domain.ErrNotFound
	}

	// copy the reviews slice so a cached value can't alias the snapshot
	out = domain.VenueDetail{Venue: *v, AvgRatings: AverageRatings(*v)}
	out.Reviews = make([]domain.Review, len(v.Reviews))
	copy(out.Reviews, v.Reviews)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
