package tmdb

import (
	"context"
	"fmt"
	"time"

	"reelproxy/models"
)

const availabilityTTL = 24 * time.Hour

// watchProvidersPayload mirrors /movie/{id}/watch/providers: a map of region
// code to that region's offer lists.
type watchProvidersPayload struct {
	Results map[string]regionOffers `json:"results"`
}

type regionOffers struct {
	Flatrate []upstreamProvider `json:"flatrate"`
	Free     []upstreamProvider `json:"free"`
	Ads      []upstreamProvider `json:"ads"`
	Rent     []upstreamProvider `json:"rent"`
	Buy      []upstreamProvider `json:"buy"`
}

type upstreamProvider struct {
	ProviderID      int64   `json:"provider_id"`
	ProviderName    string  `json:"provider_name"`
	LogoPath        *string `json:"logo_path"`
	DisplayPriority *int    `json:"display_priority"`
}

// availability returns the watch offers for one movie in one region, cached
// per (movie, region) pair. A region absent from the upstream payload yields
// all-empty lists, not an error. Safe to call concurrently for many movies;
// only successful lookups are cached.
func (s *Service) availability(ctx context.Context, movieID int64, region string) (*models.Availability, error) {
	key := fmt.Sprintf("prov:%d:%s", movieID, region)
	if cached, ok := s.cache.get(key); ok {
		if av, ok := cached.(*models.Availability); ok {
			return av, nil
		}
	}

	var payload watchProvidersPayload
	if err := s.client.get(ctx, fmt.Sprintf("/movie/%d/watch/providers", movieID), nil, &payload); err != nil {
		return nil, err
	}

	offers := payload.Results[region]
	av := &models.Availability{
		Flatrate: projectProviders(offers.Flatrate),
		Free:     projectProviders(offers.Free),
		Ads:      projectProviders(offers.Ads),
		Rent:     projectProviders(offers.Rent),
		Buy:      projectProviders(offers.Buy),
	}
	s.cache.set(key, av, availabilityTTL)
	return av, nil
}

func projectProviders(in []upstreamProvider) []models.ProviderRef {
	out := make([]models.ProviderRef, 0, len(in))
	for _, p := range in {
		out = append(out, models.ProviderRef{ID: p.ProviderID, Name: p.ProviderName, LogoPath: p.LogoPath})
	}
	return out
}
