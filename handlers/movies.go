package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelproxy/models"
	"reelproxy/services/tmdb"
)

// movieService is the slice of the TMDB service the handlers consume.
type movieService interface {
	Genres(ctx context.Context, language string) ([]models.Genre, error)
	Providers(ctx context.Context, region string) ([]models.CatalogProvider, error)
	Search(ctx context.Context, filter tmdb.SearchFilter) (*models.SearchResponse, error)
	BestTrailer(ctx context.Context, movieID int64) (*models.Video, error)
}

var _ movieService = (*tmdb.Service)(nil)

// MovieHandler serves the /api movie discovery endpoints.
type MovieHandler struct {
	Service movieService
}

func NewMovieHandler(s movieService) *MovieHandler {
	return &MovieHandler{Service: s}
}

// Genres handles GET /api/genres?language=.
func (h *MovieHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Service.Genres(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		respondError(w, "genres_failed", err)
		return
	}
	respondJSON(w, genres)
}

// Providers handles GET /api/providers?region=.
func (h *MovieHandler) Providers(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Service.Providers(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		respondError(w, "providers_failed", err)
		return
	}
	respondJSON(w, providers)
}

// Search handles GET /api/search. Defaults applied downstream: region US,
// sort pop_desc, minVotes 0, page 1, adult content excluded.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if parsed, err := strconv.Atoi(q.Get("page")); err == nil && parsed > 0 {
		page = parsed
	}

	filter := tmdb.SearchFilter{
		Region:       q.Get("region"),
		YearFrom:     q.Get("yearFrom"),
		YearTo:       q.Get("yearTo"),
		Genres:       q.Get("genres"),
		Services:     q.Get("services"),
		Monetization: q.Get("monetization"),
		Sort:         q.Get("sort"),
		MinVotes:     q.Get("minVotes"),
		Page:         page,
		IncludeAdult: q.Get("erotic") == "1",
		Query:        q.Get("query"),
	}

	resp, err := h.Service.Search(r.Context(), filter)
	if err != nil {
		respondError(w, "search_failed", err)
		return
	}
	respondJSON(w, resp)
}

// Videos handles GET /api/videos/{id}. Responds with the best YouTube
// trailer, or an empty object when the movie has none.
func (h *MovieHandler) Videos(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_id"})
		return
	}

	video, err := h.Service.BestTrailer(r.Context(), id)
	if err != nil {
		respondError(w, "videos_failed", err)
		return
	}
	if video == nil {
		respondJSON(w, struct{}{})
		return
	}
	respondJSON(w, video)
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code string, err error) {
	log.Printf("[api] %s: %v", code, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": code, "detail": err.Error()})
}
