package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pitchside/internal/domain"
)

// isoMillis matches the original wire format for createdAt: RFC 3339 UTC
// with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type ReviewService struct {
	store domain.Store
	cache domain.Cache

	// serializes the read-modify-write cycle; the store itself offers no
	// protection against two writers overwriting each other's snapshot
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewReviewService(st domain.Store, c domain.Cache) *ReviewService {
	return &ReviewService{
		store: st,
		cache: c,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateReview locates the venue, normalizes the payload into a Review,
// prepends it (newest first) and persists the whole snapshot. photoRefs
// are already-stored blob references, order preserved. Returns the
// created review, or domain.ErrNotFound for an unknown venue id; nothing
// is persisted on any failure.
func (s *ReviewService) CreateReview(ctx context.Context, venueID string, p domain.ReviewPayload, photoRefs []string) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Review{}, err
	}
	v := snap.Find(venueID)
	if v == nil {
		return domain.Review{}, domain.ErrNotFound
	}

	photos := make([]string, len(photoRefs))
	copy(photos, photoRefs)

	review := domain.Review{
		ID:        s.newID(),
		Author:    normalizeAuthor(p.Author),
		Text:      p.Text,
		Ratings:   normalizeRatings(p),
		Photos:    photos,
		CreatedAt: s.now().UTC().Format(isoMillis),
	}

	v.Reviews = append([]domain.Review{review}, v.Reviews...)

	if err := s.store.Save(ctx, snap); err != nil {
		return domain.Review{}, err
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, venueListKey)
		_ = s.cache.Del(ctx, venueKeyPrefix+venueID)
	}
	return review, nil
}
