package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(rt roundTripFunc) *Service {
	return NewService("test-token", "", &http.Client{Transport: rt})
}

// discoverBody builds a discover page payload of sequential ids for the
// requested page over a catalog of total items.
func discoverBody(page, total int) string {
	start := (page - 1) * upstreamPageSize
	var items []map[string]any
	for i := start; i < start+upstreamPageSize && i < total; i++ {
		items = append(items, map[string]any{"id": i + 1, "title": fmt.Sprintf("Movie %d", i+1)})
	}
	body, _ := json.Marshal(map[string]any{
		"page":          page,
		"results":       items,
		"total_results": total,
	})
	return string(body)
}

func TestSearchEnrichesAvailabilityWithFailureIsolation(t *testing.T) {
	var mu sync.Mutex
	availabilityCalls := 0

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		path := req.URL.Path

		if strings.HasSuffix(path, "/discover/movie") {
			page, _ := strconv.Atoi(req.URL.Query().Get("page"))
			return jsonResponse(http.StatusOK, discoverBody(page, 100)), nil
		}

		// /movie/{id}/watch/providers
		if strings.HasSuffix(path, "/watch/providers") {
			mu.Lock()
			availabilityCalls++
			mu.Unlock()
			id := strings.TrimSuffix(strings.TrimPrefix(path, "/3/movie/"), "/watch/providers")
			if id == "5" {
				return jsonResponse(http.StatusInternalServerError, `{"status_message":"boom"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"results":{"US":{"flatrate":[{"provider_id":8,"provider_name":"Netflix","logo_path":"/n.png"}]}}}`), nil
		}

		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	svc := newTestService(rt)
	resp, err := svc.Search(context.Background(), SearchFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.TotalResults)
	assert.Equal(t, 5, resp.TotalPages)
	require.Len(t, resp.Results, logicalPageSize)

	mu.Lock()
	assert.Equal(t, logicalPageSize, availabilityCalls)
	mu.Unlock()

	for _, m := range resp.Results {
		if m.ID == 5 {
			assert.Nil(t, m.Availability, "failed lookup must leave availability nil")
			continue
		}
		require.NotNil(t, m.Availability, "movie %d missing availability", m.ID)
		require.Len(t, m.Availability.Flatrate, 1)
		assert.Equal(t, "Netflix", m.Availability.Flatrate[0].Name)
		assert.NotNil(t, m.Availability.Rent)
		assert.Empty(t, m.Availability.Rent)
	}
}

func TestSearchPropagatesDiscoverFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, `{"status_message":"down"}`), nil
	})

	svc := newTestService(rt)
	_, err := svc.Search(context.Background(), SearchFilter{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
}

func TestSearchPassesFilterToDiscover(t *testing.T) {
	var gotQuery map[string][]string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/discover/movie") && gotQuery == nil {
			gotQuery = req.URL.Query()
		}
		if strings.HasSuffix(req.URL.Path, "/watch/providers") {
			return jsonResponse(http.StatusOK, `{"results":{}}`), nil
		}
		return jsonResponse(http.StatusOK, discoverBody(1, 10)), nil
	})

	svc := newTestService(rt)
	_, err := svc.Search(context.Background(), SearchFilter{
		Region:       "se",
		Sort:         "votes_desc",
		Monetization: "flatrate,rent",
		YearFrom:     "2000",
	})
	require.NoError(t, err)
	require.NotNil(t, gotQuery)

	assert.Equal(t, "SE", gotQuery["watch_region"][0])
	assert.Equal(t, "vote_count.desc", gotQuery["sort_by"][0])
	assert.Equal(t, "flatrate|rent", gotQuery["with_watch_monetization_types"][0])
	assert.Equal(t, "2000-01-01", gotQuery["primary_release_date.gte"][0])
	assert.Equal(t, "1", gotQuery["page"][0])
}

func TestAvailabilityMissingRegionYieldsEmptyLists(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":{"GB":{"flatrate":[{"provider_id":9,"provider_name":"Prime"}]}}}`), nil
	})

	svc := newTestService(rt)
	av, err := svc.availability(context.Background(), 42, "SE")
	require.NoError(t, err)

	assert.Empty(t, av.Flatrate)
	assert.Empty(t, av.Free)
	assert.Empty(t, av.Ads)
	assert.Empty(t, av.Rent)
	assert.Empty(t, av.Buy)
}

func TestAvailabilityCachedPerMovieAndRegion(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return jsonResponse(http.StatusOK, `{"results":{"US":{"buy":[{"provider_id":2,"provider_name":"Apple TV"}]}}}`), nil
	})

	svc := newTestService(rt)
	ctx := context.Background()

	first, err := svc.availability(ctx, 42, "US")
	require.NoError(t, err)
	second, err := svc.availability(ctx, 42, "US")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second lookup must come from cache")

	// A different region for the same movie is a separate cache entry.
	_, err = svc.availability(ctx, 42, "SE")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestProvidersSortedByPriorityThenName(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[
			{"provider_id":1,"provider_name":"Zulu","display_priority":2},
			{"provider_id":2,"provider_name":"Alpha","display_priority":2},
			{"provider_id":3,"provider_name":"Beta","display_priority":1},
			{"provider_id":4,"provider_name":"NoPriority"}
		]}`), nil
	})

	svc := newTestService(rt)
	list, err := svc.Providers(context.Background(), "se")
	require.NoError(t, err)
	require.Len(t, list, 4)

	names := []string{list[0].Name, list[1].Name, list[2].Name, list[3].Name}
	assert.Equal(t, []string{"Beta", "Alpha", "Zulu", "NoPriority"}, names)
	assert.Equal(t, 9999, list[3].Priority)
}

func TestProvidersCatalogCached(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return jsonResponse(http.StatusOK, `{"results":[]}`), nil
	})

	svc := newTestService(rt)
	ctx := context.Background()
	_, err := svc.Providers(ctx, "US")
	require.NoError(t, err)
	_, err = svc.Providers(ctx, "us")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "region case must not split the cache")
}

func TestGenresDefaultsLanguage(t *testing.T) {
	var gotLanguage string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotLanguage = req.URL.Query().Get("language")
		return jsonResponse(http.StatusOK, `{"genres":[{"id":28,"name":"Action"}]}`), nil
	})

	svc := newTestService(rt)
	genres, err := svc.Genres(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "en-US", gotLanguage)
	require.Len(t, genres, 1)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestBestTrailerRanking(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[
			{"key":"vimeo","name":"Elsewhere","site":"Vimeo","type":"Trailer","official":true,"size":2160},
			{"key":"teaser","name":"Teaser","site":"YouTube","type":"Teaser","official":true,"size":2160},
			{"key":"fan","name":"Fan Cut","site":"YouTube","type":"Trailer","official":false,"size":2160},
			{"key":"small","name":"Official Small","site":"YouTube","type":"Trailer","official":true,"size":720,"published_at":"2023-01-01T00:00:00.000Z"},
			{"key":"old","name":"Official Big Old","site":"YouTube","type":"Trailer","official":true,"size":1080,"published_at":"2020-01-01T00:00:00.000Z"},
			{"key":"new","name":"Official Big New","site":"YouTube","type":"Trailer","official":true,"size":1080,"published_at":"2024-01-01T00:00:00.000Z"}
		]}`), nil
	})

	svc := newTestService(rt)
	video, err := svc.BestTrailer(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, video)

	// Trailer beats Teaser, official beats fan, 1080 beats 720, and the
	// newer of the two 1080p uploads wins.
	assert.Equal(t, "new", video.Key)
	assert.Equal(t, "Trailer", video.Type)
}

func TestBestTrailerNoneFound(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[{"key":"x","site":"Vimeo","type":"Trailer"}]}`), nil
	})

	svc := newTestService(rt)
	video, err := svc.BestTrailer(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, video)
}
