package providerRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"providerhub/models"
)

// MemoryProviderRepo implements ProviderRepository over an in-process
// snapshot. It is read-only after construction and safe for concurrent use.
type MemoryProviderRepo struct {
	providers []models.ProviderRecord
	owners    map[string]models.OwnerIdentity
}

// Fixture is the on-disk format read by LoadMemoryProviderRepo.
type Fixture struct {
	Owners    []models.Owner          `json:"owners"`
	Providers []models.ProviderRecord `json:"providers"`
}

// NewMemoryProviderRepo snapshots providers (in insertion order) and owners.
func NewMemoryProviderRepo(providers []models.ProviderRecord, owners []models.Owner) *MemoryProviderRepo {
	r := &MemoryProviderRepo{
		providers: append([]models.ProviderRecord(nil), providers...),
		owners:    make(map[string]models.OwnerIdentity, len(owners)),
	}
	for _, o := range owners {
		r.owners[o.ID] = o.OwnerIdentity
	}
	return r
}

// LoadMemoryProviderRepo reads a JSON fixture from path.
func LoadMemoryProviderRepo(path string) (*MemoryProviderRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for _, p := range fx.Providers {
		if !p.Location.Valid() {
			return nil, fmt.Errorf("seed provider %s has an invalid location", p.ID)
		}
	}
	return NewMemoryProviderRepo(fx.Providers, fx.Owners), nil
}

func (r *MemoryProviderRepo) FindByAttributes(ctx context.Context, criteria Criteria, window Window) ([]models.ProviderMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches := r.filter(criteria)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Rating != matches[j].Rating {
			return matches[i].Rating > matches[j].Rating
		}
		return matches[i].ID < matches[j].ID
	})
	return r.page(matches, window), nil
}

func (r *MemoryProviderRepo) CountByAttributes(ctx context.Context, criteria Criteria) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.filter(criteria))), nil
}

func (r *MemoryProviderRepo) FindNear(ctx context.Context, near NearQuery, criteria Criteria, window Window) ([]models.ProviderMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches := r.filterNear(near, criteria)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})
	return r.page(matches, window), nil
}

func (r *MemoryProviderRepo) CountNear(ctx context.Context, near NearQuery, criteria Criteria) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.filterNear(near, criteria))), nil
}

func (r *MemoryProviderRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryProviderRepo) filter(criteria Criteria) []models.ProviderMatch {
	match := criteria.Matcher()
	var out []models.ProviderMatch
	for _, p := range r.providers {
		if match(p) {
			out = append(out, models.ProviderMatch{ProviderRecord: p})
		}
	}
	return out
}

func (r *MemoryProviderRepo) filterNear(near NearQuery, criteria Criteria) []models.ProviderMatch {
	match := criteria.Matcher()
	var out []models.ProviderMatch
	for _, p := range r.providers {
		d := haversineMeters(near.Origin, p.Location.GeoPoint)
		if d > near.MaxDistance || !match(p) {
			continue
		}
		out = append(out, models.ProviderMatch{ProviderRecord: p, Distance: d})
	}
	return out
}

// page applies the window, then joins owners and drops service descriptions
// the same way the Mongo pipelines do.
func (r *MemoryProviderRepo) page(matches []models.ProviderMatch, window Window) []models.ProviderMatch {
	start := window.Skip
	if start > int64(len(matches)) {
		start = int64(len(matches))
	}
	end := int64(len(matches))
	if window.Limit > 0 && start+window.Limit < end {
		end = start + window.Limit
	}

	out := make([]models.ProviderMatch, 0, end-start)
	for _, m := range matches[start:end] {
		services := make([]models.Service, len(m.Services))
		for i, s := range m.Services {
			s.Description = ""
			services[i] = s
		}
		m.Services = services
		if owner, ok := r.owners[m.OwnerID]; ok {
			m.Owner = &owner
		}
		out = append(out, m)
	}
	return out
}
