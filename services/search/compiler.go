package search

import (
	"strings"

	providerRepo "providerhub/database/repository/provider"
)

const maxQueryTerms = 16

// Compile turns validated filters into the criteria shared by the page fetch
// and the count. Location is handled by the execution path, not here.
func Compile(filters SearchFilters) providerRepo.Criteria {
	criteria := providerRepo.Criteria{
		Terms:    queryTerms(filters.Query),
		Category: filters.Category,
		Service:  filters.Service,
	}
	if filters.Rating != nil {
		rating := *filters.Rating
		criteria.MinRating = &rating
	}
	return criteria
}

// queryTerms lower-cases and de-duplicates the words of a free-text query.
func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
		if len(terms) == maxQueryTerms {
			break
		}
	}
	return terms
}
