package tmdb

// mapSort translates a UI sort code into a TMDB sort_by specification.
// Unrecognized codes map to the same default as pop_desc.
func mapSort(code string) string {
	switch code {
	case "pop_desc":
		return "popularity.desc"
	case "pop_asc":
		return "popularity.asc"
	case "tmdb_desc":
		return "vote_average.desc"
	case "tmdb_asc":
		return "vote_average.asc"
	case "votes_desc":
		return "vote_count.desc"
	case "votes_asc":
		return "vote_count.asc"
	case "year_desc":
		return "primary_release_date.desc"
	case "year_asc":
		return "primary_release_date.asc"
	case "title_asc":
		return "original_title.asc"
	case "title_desc":
		return "original_title.desc"
	default:
		return "popularity.desc"
	}
}
