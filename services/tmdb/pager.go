package tmdb

import (
	"context"

	"reelproxy/models"
)

const (
	// logicalPageSize is the page size exposed to clients.
	logicalPageSize = 21
	// upstreamPageSize is TMDB's fixed discover page size.
	upstreamPageSize = 20
)

// discoverPage is one raw TMDB discover page.
type discoverPage struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// pageFetcher fetches one 1-based upstream discover page.
type pageFetcher func(ctx context.Context, page int) (discoverPage, error)

// fetchLogicalPage maps logical page p onto the run of upstream pages that
// cover its [start, end) item window, fetches them in ascending order, and
// slices out exactly the window. With the current size constants the run is
// never longer than two pages, but the loop handles any width so the
// constants can change without breaking the window math.
//
// Returns the deduplicated window, the logical page count, and the
// authoritative total result count reported by the first fetched page. A
// short final window is returned as-is, never padded. Fetch errors propagate
// unretried.
func fetchLogicalPage(ctx context.Context, p int, fetch pageFetcher) ([]models.Movie, int, int, error) {
	if p < 1 {
		p = 1
	}
	start := (p - 1) * logicalPageSize
	end := start + logicalPageSize
	firstPage := start/upstreamPageSize + 1
	lastPage := (end - 1)/upstreamPageSize + 1

	var (
		combined     []models.Movie
		totalResults int
	)
	for page := firstPage; page <= lastPage; page++ {
		res, err := fetch(ctx, page)
		if err != nil {
			return nil, 0, 0, err
		}
		if page == firstPage {
			totalResults = res.TotalResults
		}
		combined = append(combined, res.Results...)
	}

	// Window offset relative to the concatenated pages.
	offset := start - (firstPage-1)*upstreamPageSize
	if offset > len(combined) {
		offset = len(combined)
	}
	limit := offset + logicalPageSize
	if limit > len(combined) {
		limit = len(combined)
	}
	window := dedupeByID(combined[offset:limit])

	totalPages := (totalResults + logicalPageSize - 1) / logicalPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return window, totalPages, totalResults, nil
}

// dedupeByID drops records without an id and repeated ids, preserving first
// occurrence order. TMDB shouldn't hand back duplicates within a window, but
// adjacent pages can shift under us between the two fetches.
func dedupeByID(in []models.Movie) []models.Movie {
	seen := make(map[int64]struct{}, len(in))
	out := make([]models.Movie, 0, len(in))
	for _, m := range in {
		if m.ID == 0 {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
