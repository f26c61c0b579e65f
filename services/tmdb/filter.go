package tmdb

import "strings"

// SearchFilter carries one search request's parameters as received from the
// client. It is built once per request and never mutated; zero values mean
// "not set" and are omitted from the upstream query.
type SearchFilter struct {
	Region       string // ISO 3166-1 two-letter country code
	YearFrom     string // four-digit year, inclusive lower bound
	YearTo       string // four-digit year, inclusive upper bound
	Genres       string // comma list of TMDB genre IDs
	Services     string // comma list of TMDB provider IDs
	Monetization string // comma list: flatrate,free,ads,rent,buy
	Sort         string // UI sort code, see mapSort
	MinVotes     string // vote_count.gte threshold
	Page         int    // 1-based logical page
	IncludeAdult bool
	Query        string // free-text query; reserved, discover has no text parameter
}

// normalized returns a copy with defaults applied: region US (uppercased),
// page clamped to >= 1, minVotes 0.
func (f SearchFilter) normalized() SearchFilter {
	if f.Region == "" {
		f.Region = "US"
	}
	f.Region = strings.ToUpper(f.Region)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.MinVotes == "" {
		f.MinVotes = "0"
	}
	return f
}

// discoverParams builds the TMDB /discover/movie query for this filter.
// The page parameter is intentionally absent; the remapper sets it per fetch.
func (f SearchFilter) discoverParams() map[string]string {
	includeAdult := "false"
	if f.IncludeAdult {
		includeAdult = "true"
	}

	// TMDB expects monetization types pipe-separated, the UI sends commas.
	var monetization string
	if f.Monetization != "" {
		var kinds []string
		for _, kind := range strings.Split(f.Monetization, ",") {
			if kind = strings.TrimSpace(kind); kind != "" {
				kinds = append(kinds, kind)
			}
		}
		monetization = strings.Join(kinds, "|")
	}

	params := map[string]string{
		"language":                      "en-US",
		"include_adult":                 includeAdult,
		"sort_by":                       mapSort(f.Sort),
		"vote_count.gte":                f.MinVotes,
		"watch_region":                  f.Region,
		"with_watch_monetization_types": monetization,
		"with_watch_providers":          f.Services,
		"with_genres":                   f.Genres,
	}
	if f.YearFrom != "" {
		params["primary_release_date.gte"] = f.YearFrom + "-01-01"
	}
	if f.YearTo != "" {
		params["primary_release_date.lte"] = f.YearTo + "-12-31"
	}
	return params
}
