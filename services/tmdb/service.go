package tmdb

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"reelproxy/models"
)

const providerCatalogTTL = 12 * time.Hour

// Service aggregates the TMDB API behind the proxy's simplified operations.
// All state lives in the in-memory TTL cache; the service is safe for
// concurrent use by many request handlers.
type Service struct {
	client *client
	cache  *memoryCache
}

// NewService builds a Service. token is a TMDB v4 read access token, apiKey a
// v3 key; either may be empty, but requests fail with ErrNoCredentials when
// both are. A nil httpc gets a default client with a 15s timeout.
func NewService(token, apiKey string, httpc *http.Client) *Service {
	return &Service{
		client: newClient(token, apiKey, httpc),
		cache:  newMemoryCache(),
	}
}

// Genres returns the TMDB movie genre list for a language (default en-US).
func (s *Service) Genres(ctx context.Context, language string) ([]models.Genre, error) {
	if language == "" {
		language = "en-US"
	}
	var payload struct {
		Genres []models.Genre `json:"genres"`
	}
	if err := s.client.get(ctx, "/genre/movie/list", map[string]string{"language": language}, &payload); err != nil {
		return nil, err
	}
	if payload.Genres == nil {
		payload.Genres = []models.Genre{}
	}
	return payload.Genres, nil
}

// Providers returns a region's full watch-provider catalog, sorted by
// ascending display priority then name, cached for 12 hours. Providers
// without a display priority rank last.
func (s *Service) Providers(ctx context.Context, region string) ([]models.CatalogProvider, error) {
	region = normalizeRegion(region)

	key := "provCatalog:" + region
	if cached, ok := s.cache.get(key); ok {
		if list, ok := cached.([]models.CatalogProvider); ok {
			return list, nil
		}
	}

	var payload struct {
		Results []upstreamProvider `json:"results"`
	}
	params := map[string]string{"watch_region": region, "language": "en-US"}
	if err := s.client.get(ctx, "/watch/providers/movie", params, &payload); err != nil {
		return nil, err
	}

	list := make([]models.CatalogProvider, 0, len(payload.Results))
	for _, p := range payload.Results {
		priority := 9999
		if p.DisplayPriority != nil {
			priority = *p.DisplayPriority
		}
		list = append(list, models.CatalogProvider{
			ID:       p.ProviderID,
			Name:     p.ProviderName,
			LogoPath: p.LogoPath,
			Priority: priority,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority < list[j].Priority
		}
		return list[i].Name < list[j].Name
	})

	s.cache.set(key, list, providerCatalogTTL)
	return list, nil
}

// Search runs a discover query for one logical page and enriches every result
// with its regional availability. Availability lookups fan out concurrently;
// an individual lookup failure leaves that one movie's availability nil and
// never fails the request.
func (s *Service) Search(ctx context.Context, filter SearchFilter) (*models.SearchResponse, error) {
	filter = filter.normalized()
	params := filter.discoverParams()

	fetch := func(ctx context.Context, page int) (discoverPage, error) {
		pageParams := make(map[string]string, len(params)+1)
		for k, v := range params {
			pageParams[k] = v
		}
		pageParams["page"] = fmt.Sprintf("%d", page)
		var res discoverPage
		err := s.client.get(ctx, "/discover/movie", pageParams, &res)
		return res, err
	}

	results, totalPages, totalResults, err := fetchLogicalPage(ctx, filter.Page, fetch)
	if err != nil {
		return nil, err
	}

	p := pool.New().WithMaxGoroutines(logicalPageSize)
	for i := range results {
		p.Go(func() {
			av, err := s.availability(ctx, results[i].ID, filter.Region)
			if err != nil {
				log.Printf("[tmdb] availability lookup failed movie=%d region=%s: %v", results[i].ID, filter.Region, err)
				return
			}
			results[i].Availability = av
		})
	}
	p.Wait()

	s.enrichRatings(results)

	return &models.SearchResponse{
		Page:         filter.Page,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		Results:      results,
	}, nil
}

// BestTrailer returns the best-ranked YouTube trailer for a movie, or nil
// when it has none. Ranking: Trailer > Teaser > anything else, official
// before unofficial, larger size first, newer publish date as last tiebreak.
func (s *Service) BestTrailer(ctx context.Context, movieID int64) (*models.Video, error) {
	params := map[string]string{
		"language":               "en-US",
		"include_video_language": "en-US,null",
	}
	var payload struct {
		Results []upstreamVideo `json:"results"`
	}
	if err := s.client.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), params, &payload); err != nil {
		return nil, err
	}

	var vids []upstreamVideo
	for _, v := range payload.Results {
		if v.Site == "YouTube" {
			vids = append(vids, v)
		}
	}
	if len(vids) == 0 {
		return nil, nil
	}

	sort.SliceStable(vids, func(i, j int) bool {
		a, b := vids[i], vids[j]
		if ra, rb := videoTypeRank(a.Type), videoTypeRank(b.Type); ra != rb {
			return ra < rb
		}
		if a.Official != b.Official {
			return a.Official
		}
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		// RFC 3339 timestamps compare correctly as strings.
		return a.PublishedAt > b.PublishedAt
	})

	best := vids[0]
	return &models.Video{Key: best.Key, Name: best.Name, Type: best.Type}, nil
}

type upstreamVideo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Size        int    `json:"size"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

func videoTypeRank(t string) int {
	switch t {
	case "Trailer":
		return 0
	case "Teaser":
		return 1
	default:
		return 2
	}
}

func normalizeRegion(region string) string {
	if region == "" {
		return "US"
	}
	return strings.ToUpper(region)
}
