package providerRepo

import (
	"context"

	"providerhub/models"
)

// Window is an offset page over an ordered result set.
type Window struct {
	Skip  int64
	Limit int64
}

// NearQuery anchors a spatial search.
type NearQuery struct {
	Origin      models.GeoPoint
	MaxDistance float64 // metres, inclusive
}

// ProviderRepository is the read side of the provider store used by search.
// Every method takes the same Criteria value so page fetches and counts can
// never disagree on which records qualify.
type ProviderRepository interface {
	// FindByAttributes returns matching providers ordered by rating (desc, then id).
	FindByAttributes(ctx context.Context, criteria Criteria, window Window) ([]models.ProviderMatch, error)
	// CountByAttributes counts every provider matching criteria.
	CountByAttributes(ctx context.Context, criteria Criteria) (int64, error)
	// FindNear returns matching providers within near.MaxDistance, nearest first (then id).
	FindNear(ctx context.Context, near NearQuery, criteria Criteria, window Window) ([]models.ProviderMatch, error)
	// CountNear counts every provider within near.MaxDistance matching criteria.
	CountNear(ctx context.Context, near NearQuery, criteria Criteria) (int64, error)
	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}
