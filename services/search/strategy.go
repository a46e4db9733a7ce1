package search

import (
	"context"

	providerRepo "providerhub/database/repository/provider"
	"providerhub/models"
)

const (
	PathAttribute = "attribute"
	PathSpatial   = "spatial"
)

// executionPath is one way of running a compiled search. The fetch and the
// count of a path always see the same criteria.
type executionPath interface {
	name() string
	fetch(ctx context.Context, repo providerRepo.ProviderRepository, criteria providerRepo.Criteria, window providerRepo.Window) ([]models.ProviderMatch, error)
	count(ctx context.Context, repo providerRepo.ProviderRepository, criteria providerRepo.Criteria) (int64, error)
}

// attributePath ranks by rating.
type attributePath struct{}

func (attributePath) name() string { return PathAttribute }

func (attributePath) fetch(ctx context.Context, repo providerRepo.ProviderRepository, criteria providerRepo.Criteria, window providerRepo.Window) ([]models.ProviderMatch, error) {
	return repo.FindByAttributes(ctx, criteria, window)
}

func (attributePath) count(ctx context.Context, repo providerRepo.ProviderRepository, criteria providerRepo.Criteria) (int64, error) {
	return repo.CountByAttributes(ctx, criteria)
}

// spatialPath ranks by distance from an origin, inside a fixed radius.
type spatialPath struct {
	near providerRepo.NearQuery
}

func (spatialPath) name() string { return PathSpatial }

func (p spatialPath) fetch(ctx context.Context, repo providerRepo.ProviderRepository, criteria providerRepo.Criteria, window providerRepo.Window) ([]models.ProviderMatch, error) {
	return repo.FindNear(ctx, p.near, criteria, window)
}

func (p spatialPath) count(ctx context.Context, repo providerRepo.ProviderRepository, criteria providerRepo.Criteria) (int64, error) {
	return repo.CountNear(ctx, p.near, criteria)
}

func selectPath(filters SearchFilters) executionPath {
	if filters.Location == nil {
		return attributePath{}
	}
	return spatialPath{near: providerRepo.NearQuery{
		Origin:      models.NewGeoPoint(filters.Location.Longitude, filters.Location.Latitude),
		MaxDistance: providerRepo.MaxSearchDistanceMeters,
	}}
}
