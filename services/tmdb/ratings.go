package tmdb

import "reelproxy/models"

// enrichRatings stamps external ratings onto a result set. TMDB-only for
// now: no ratings source is wired, so results pass through with the rating
// fields absent. Kept as the seam where an IMDB/RT lookup would slot in.
func (s *Service) enrichRatings(results []models.Movie) {
	for i := range results {
		results[i].IMDBRating = nil
		results[i].RTRating = nil
	}
}
