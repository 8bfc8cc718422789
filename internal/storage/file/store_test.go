package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pitchside/internal/domain"
	filestore "pitchside/internal/storage/file"
)

func tempStore(t *testing.T) (*filestore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return filestore.New(path), path
}

func TestLoad_MissingFile(t *testing.T) {
	st, _ := tempStore(t)
	_, err := st.Load(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	st, path := tempStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := st.Load(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("parse failure must surface as ErrStoreUnavailable, got %v", err)
	}
}

func TestLoad_DuplicateVenueID(t *testing.T) {
	st, path := tempStore(t)
	doc := `{"venues":[{"id":"a","name":"A","city":"X","coords":{"lat":0,"lon":0},"reviews":[]},
	                   {"id":"a","name":"A2","city":"Y","coords":{"lat":0,"lon":0},"reviews":[]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := st.Load(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("duplicate ids are corruption, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	st, _ := tempStore(t)
	ctx := context.Background()

	snap := domain.Snapshot{Venues: []domain.Venue{
		{
			ID: "riverside", Name: "Riverside Park", City: "Austin",
			Coords: domain.Coords{Lat: 30.25, Lon: -97.75},
			Reviews: []domain.Review{{
				ID: "r1", Author: "Ana", Text: "nice",
				Ratings:   domain.Ratings{Bathrooms: 3, Food: 4, Parking: 2, Fields: 5},
				Photos:    []string{"/uploads/x.jpg"},
				CreatedAt: "2025-06-01T10:00:00.000Z",
			}},
		},
		{ID: "northfield", Name: "North Field", City: "Dallas", Coords: domain.Coords{Lat: 32.78, Lon: -96.80}, Reviews: []domain.Review{}},
	}}
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestSaveLoad_NilSlicesBecomeEmpty(t *testing.T) {
	st, _ := tempStore(t)
	ctx := context.Background()

	snap := domain.Snapshot{Venues: []domain.Venue{
		{ID: "v", Name: "V", City: "C", Reviews: []domain.Review{{ID: "r", Photos: nil}}},
	}}
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Venues[0].Reviews[0].Photos == nil {
		t.Fatalf("photos must round-trip as empty slice, not nil")
	}
}

func TestSave_LeavesNoTempDebrisOnSuccess(t *testing.T) {
	st, path := tempStore(t)
	if err := st.Save(context.Background(), domain.Snapshot{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ents, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(ents) != 1 || ents[0].Name() != "db.json" {
		t.Fatalf("unexpected directory contents: %v", ents)
	}
}
