package models

// Genre is a single TMDB movie genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProviderRef identifies one watch provider inside an availability block.
type ProviderRef struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// CatalogProvider is one entry of a region's full provider catalog.
// Priority is TMDB's display_priority; providers without one rank last.
type CatalogProvider struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
	Priority int     `json:"priority"`
}

// Availability groups a movie's regional watch offers by monetization type.
// Every list is present (possibly empty) so clients never branch on missing keys.
type Availability struct {
	Flatrate []ProviderRef `json:"flatrate"`
	Free     []ProviderRef `json:"free"`
	Ads      []ProviderRef `json:"ads"`
	Rent     []ProviderRef `json:"rent"`
	Buy      []ProviderRef `json:"buy"`
}

// Movie is a raw TMDB discover/search result passed through to the client,
// augmented with the resolved availability for the requested region.
// Availability is nil when resolution failed for this one item.
type Movie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	GenreIDs      []int64 `json:"genre_ids,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	Adult         bool    `json:"adult,omitempty"`

	Availability *Availability `json:"availability"`

	// External ratings are an enrichment hook; absent until a ratings
	// source is wired in.
	IMDBRating *float64 `json:"imdb_rating,omitempty"`
	RTRating   *float64 `json:"rt_rating,omitempty"`
}

// SearchResponse is the envelope for /api/search. Page numbers and totals are
// logical (21-item) pages, not TMDB's native 20-item pages.
type SearchResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// Video is the best-ranked YouTube trailer for a movie.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}
