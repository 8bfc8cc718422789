package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"pitchside/internal/app"
	"pitchside/internal/domain"
)

const maxUploadMemory = 32 << 20

type Handlers struct {
	Q     *app.QueryService
	R     *app.ReviewService
	Blobs domain.BlobStore

	// Limit, when set, throttles review creation.
	Limit *rate.Limiter
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/venues", h.listVenues)
	s.mux.Get("/api/venues/{id}", h.getVenue)
	if h.Limit != nil {
		s.mux.With(RateLimit(h.Limit)).Post("/api/venues/{id}/reviews", h.createReview)
	} else {
		s.mux.Post("/api/venues/{id}/reviews", h.createReview)
	}
}

// error body shape matches the original service: {"error": "..."}
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) listVenues(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListVenues(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list venues failed")
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := h.Q.GetVenue(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		log.Error().Err(err).Str("venue", id).Msg("get venue failed")
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// createReview accepts multipart form bodies (author, text, bathrooms,
// food, parking, fields, photos[]) and plain JSON bodies without photos.
// Photos are stored through the blob store first; the service only ever
// sees the resulting reference strings.
func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		payload   domain.ReviewPayload
		photoRefs []string
	)

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed multipart body")
			return
		}
		payload = domain.ReviewPayload{
			Author:    r.FormValue("author"),
			Text:      r.FormValue("text"),
			Bathrooms: r.FormValue("bathrooms"),
			Food:      r.FormValue("food"),
			Parking:   r.FormValue("parking"),
			Fields:    r.FormValue("fields"),
		}

		files := r.MultipartForm.File["photos"]
		if len(files) > domain.MaxReviewPhotos {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("At most %d photos per review", domain.MaxReviewPhotos))
			return
		}
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "Unreadable photo upload")
				return
			}
			ref, err := h.Blobs.Put(r.Context(), fh.Filename, f)
			f.Close()
			if err != nil {
				log.Error().Err(err).Str("file", fh.Filename).Msg("photo store failed")
				writeError(w, http.StatusInternalServerError, "Internal error")
				return
			}
			photoRefs = append(photoRefs, ref)
		}

	default:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed JSON body")
			return
		}
		payload = domain.ReviewPayload{
			Author:    field(body, "author"),
			Text:      field(body, "text"),
			Bathrooms: field(body, "bathrooms"),
			Food:      field(body, "food"),
			Parking:   field(body, "parking"),
			Fields:    field(body, "fields"),
		}
	}

	review, err := h.R.CreateReview(r.Context(), id, payload, photoRefs)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Venue not found")
			return
		}
		log.Error().Err(err).Str("venue", id).Msg("create review failed")
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// field stringifies a loosely-typed JSON value; absent keys become "".
func field(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
