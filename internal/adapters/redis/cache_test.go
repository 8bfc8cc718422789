package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "pitchside/internal/adapters/redis"
	"pitchside/internal/domain"
)

func newCache(t *testing.T) *redisad.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	in := domain.VenueSummary{
		ID: "riverside", Name: "Riverside Park", City: "Austin",
		Coords:      domain.Coords{Lat: 30.25, Lon: -97.75},
		AvgRatings:  domain.Ratings{Bathrooms: 4, Fields: 5},
		ReviewCount: 2,
	}
	if err := c.Set(ctx, "venue:riverside", in, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out domain.VenueSummary
	ok, err := c.Get(ctx, "venue:riverside", &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("got %+v want %+v", out, in)
	}
}

func TestCache_MissAndDelete(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	var dst domain.VenueSummary
	ok, err := c.Get(ctx, "absent", &dst)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}

	if err := c.Set(ctx, "k", domain.VenueSummary{ID: "x"}, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	ok, _ = c.Get(ctx, "k", &dst)
	if ok {
		t.Fatalf("deleted key must miss")
	}
}
