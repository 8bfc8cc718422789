//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pitchside/internal/adapters/blob"
	httpserver "pitchside/internal/adapters/http_server"
	"pitchside/internal/app"
	"pitchside/internal/domain"
	filestore "pitchside/internal/storage/file"
)

// Full flow against the real file store: seed, list, submit a review with
// a photo, observe the aggregate move, then reopen the store and confirm
// the document survived a "restart".
func TestHTTP_EndToEnd_ReviewFlow(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db.json")

	seed := domain.Snapshot{Venues: []domain.Venue{{
		ID: "riverside", Name: "Riverside Park", City: "Austin",
		Coords: domain.Coords{Lat: 30.25, Lon: -97.75},
		Reviews: []domain.Review{{
			ID: "r1", Author: "Ana", Text: "decent",
			Ratings:   domain.Ratings{Bathrooms: 3, Food: 3, Parking: 3, Fields: 3},
			Photos:    []string{},
			CreatedAt: "2025-06-01T10:00:00.000Z",
		}},
	}}}
	raw, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := os.WriteFile(dbPath, raw, 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	store := filestore.New(dbPath)
	blobs, err := blob.NewDiskStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	srv := httpserver.New()
	srv.ServeUploads(blobs.Dir())
	srv.MountHandlers(&httpserver.Handlers{
		Q:     app.NewQueryService(store, nil, time.Minute),
		R:     app.NewReviewService(store, nil),
		Blobs: blobs,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// 1) baseline list
	var list []domain.VenueSummary
	getJSON(t, ts.URL+"/api/venues", &list)
	if len(list) != 1 || list[0].ReviewCount != 1 {
		t.Fatalf("baseline list wrong: %+v", list)
	}

	// 2) submit a review with one photo
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("author", "Bob")
	_ = mw.WriteField("text", "great pitch")
	_ = mw.WriteField("bathrooms", "5")
	_ = mw.WriteField("food", "5")
	_ = mw.WriteField("parking", "5")
	_ = mw.WriteField("fields", "5")
	fw, _ := mw.CreateFormFile("photos", "pitch.jpg")
	_, _ = fw.Write([]byte("jpeg-bytes"))
	_ = mw.Close()

	res, err := http.Post(ts.URL+"/api/venues/riverside/reviews", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	var created domain.Review
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Author != "Bob" || len(created.Photos) != 1 {
		t.Fatalf("unexpected created review: %+v", created)
	}

	// 3) aggregate moved: (3+5)/2 = 4 in every category
	var detail domain.VenueDetail
	getJSON(t, ts.URL+"/api/venues/riverside", &detail)
	want := domain.Ratings{Bathrooms: 4, Food: 4, Parking: 4, Fields: 4}
	if detail.AvgRatings != want {
		t.Fatalf("avg %+v, want %+v", detail.AvgRatings, want)
	}
	if detail.Reviews[0].ID != created.ID {
		t.Fatalf("newest review must come first")
	}

	// 4) fresh store handle sees the same document
	reopened, err := filestore.New(dbPath).Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reopened.Venues[0].Reviews) != 2 || reopened.Venues[0].Reviews[0].ID != created.ID {
		t.Fatalf("persisted document wrong after restart: %+v", reopened.Venues[0].Reviews)
	}
}

func getJSON(t *testing.T, url string, dst any) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}
