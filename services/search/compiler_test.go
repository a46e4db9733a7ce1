package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	rating := 3.5
	c := Compile(SearchFilters{
		Query:    "Hair  hair CUT",
		Category: "salon",
		Rating:   &rating,
		Service:  "Blow dry",
		Location: &Point{Longitude: 1, Latitude: 2},
		Page:     1,
		Limit:    10,
	})

	assert.Equal(t, []string{"hair", "cut"}, c.Terms)
	assert.Equal(t, "salon", c.Category)
	assert.Equal(t, "Blow dry", c.Service)
	require.NotNil(t, c.MinRating)
	assert.Equal(t, 3.5, *c.MinRating)

	rating = 1
	assert.Equal(t, 3.5, *c.MinRating, "criteria must not alias the filters")
}

func TestCompileCapsTerms(t *testing.T) {
	words := make([]string, 40)
	for i := range words {
		words[i] = strings.Repeat("w", i+1)
	}
	c := Compile(SearchFilters{Query: strings.Join(words, " ")})
	assert.Len(t, c.Terms, maxQueryTerms)
}

func TestCompileEmptyQuery(t *testing.T) {
	assert.True(t, Compile(SearchFilters{Page: 1, Limit: 10}).IsEmpty())
}

func TestCacheKeyIsCanonical(t *testing.T) {
	a := CacheKey(SearchFilters{Query: "Hair cut", Service: "FACIAL", Page: 1, Limit: 10})
	b := CacheKey(SearchFilters{Query: "cut  hair hair", Service: "facial", Page: 1, Limit: 10})
	c := CacheKey(SearchFilters{Query: "hair cut", Service: "facial", Page: 2, Limit: 10})

	assert.True(t, strings.HasPrefix(a, cacheKeyPrefix))
	assert.NotEqual(t, a, c)
	// Term order is preserved, so reordered queries are distinct keys.
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, CacheKey(SearchFilters{Query: "HAIR   Cut", Service: "Facial", Page: 1, Limit: 10}))

	near := CacheKey(SearchFilters{Location: &Point{Longitude: 35.5, Latitude: 33.51}, Page: 1, Limit: 10})
	assert.Contains(t, near, "near=35.5%2C33.51")
}
