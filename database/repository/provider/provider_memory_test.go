package providerRepo

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"providerhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Roughly 111.3 km per degree of latitude at MongoDB's earth radius.
const metresPerDegree = 111319.5

func TestMemoryFindByAttributes(t *testing.T) {
	repo := NewMemoryProviderRepo([]models.ProviderRecord{
		record("b", 3.0, "salon", 0, 0),
		record("c", 4.8, "spa", 0, 0),
		record("a", 4.5, "salon", 0, 0),
		record("d", 4.5, "salon", 0, 0),
	}, nil)
	ctx := context.Background()

	got, err := repo.FindByAttributes(ctx, Criteria{Category: "salon"}, Window{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d", "b"}, ids(got))

	total, err := repo.CountByAttributes(ctx, Criteria{Category: "salon"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	page, err := repo.FindByAttributes(ctx, Criteria{}, Window{Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, ids(page))

	beyond, err := repo.FindByAttributes(ctx, Criteria{}, Window{Skip: 10, Limit: 2})
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestMemoryFindNear(t *testing.T) {
	origin := models.NewGeoPoint(35.50, 33.51)
	near := NearQuery{Origin: origin, MaxDistance: MaxSearchDistanceMeters}

	repo := NewMemoryProviderRepo([]models.ProviderRecord{
		record("far", 5.0, "salon", 35.50, 33.51+20000/metresPerDegree),
		record("mid", 1.0, "salon", 35.50, 33.51+5000/metresPerDegree),
		record("close", 2.0, "salon", 35.50, 33.51+50/metresPerDegree),
	}, nil)
	ctx := context.Background()

	got, err := repo.FindNear(ctx, near, Criteria{}, Window{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"close", "mid"}, ids(got))
	assert.InDelta(t, 50, got[0].Distance, 1)
	assert.InDelta(t, 5000, got[1].Distance, 5)

	total, err := repo.CountNear(ctx, near, Criteria{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	filtered, err := repo.CountNear(ctx, near, Criteria{MinRating: ptr(1.5)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, filtered)
}

func TestMemoryFindNearBoundaryIsInclusive(t *testing.T) {
	origin := models.NewGeoPoint(35.50, 33.51)
	edge := record("edge", 3.0, "salon", 35.50, 33.51+MaxSearchDistanceMeters/metresPerDegree)
	past := record("past", 3.0, "salon", 35.50, 33.51+(MaxSearchDistanceMeters+5)/metresPerDegree)
	repo := NewMemoryProviderRepo([]models.ProviderRecord{past, edge}, nil)
	ctx := context.Background()

	// A record exactly MaxDistance away is in range.
	near := NearQuery{Origin: origin, MaxDistance: haversineMeters(origin, edge.Location.GeoPoint)}
	got, err := repo.FindNear(ctx, near, Criteria{}, Window{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"edge"}, ids(got))
	assert.Equal(t, near.MaxDistance, got[0].Distance)

	total, err := repo.CountNear(ctx, near, Criteria{Category: "salon"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	near.MaxDistance = math.Nextafter(near.MaxDistance, 0)
	total, err = repo.CountNear(ctx, near, Criteria{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMemoryPageShaping(t *testing.T) {
	withOwner := record("p1", 4, "salon", 0, 0, svc("s1", "Haircut", "long text"))
	orphan := record("p2", 3, "salon", 0, 0)
	orphan.OwnerID = "missing"

	repo := NewMemoryProviderRepo(
		[]models.ProviderRecord{withOwner, orphan},
		[]models.Owner{{ID: "owner-p1", OwnerIdentity: models.OwnerIdentity{Name: "Rana", Phone: "+961", Email: "rana@example.com"}}},
	)

	got, err := repo.FindByAttributes(context.Background(), Criteria{}, Window{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Owner)
	assert.Equal(t, "Rana", got[0].Owner.Name)
	assert.Equal(t, "", got[0].Services[0].Description)
	assert.Nil(t, got[1].Owner)

	// The snapshot itself keeps the description.
	assert.Equal(t, "long text", repo.providers[0].Services[0].Description)
}

func TestMemoryCancelledContext(t *testing.T) {
	repo := NewMemoryProviderRepo(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByAttributes(ctx, Criteria{}, Window{Limit: 1})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.CountNear(ctx, NearQuery{}, Criteria{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}

func TestLoadMemoryProviderRepo(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads fixture", func(t *testing.T) {
		fx := Fixture{
			Owners:    []models.Owner{{ID: "owner-a", OwnerIdentity: models.OwnerIdentity{Name: "A"}}},
			Providers: []models.ProviderRecord{record("a", 4, "salon", 35.5, 33.5)},
		}
		data, err := json.Marshal(fx)
		require.NoError(t, err)
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		repo, err := LoadMemoryProviderRepo(path)
		require.NoError(t, err)
		got, err := repo.FindByAttributes(context.Background(), Criteria{}, Window{Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Owner.Name)
	})

	t.Run("rejects invalid location", func(t *testing.T) {
		bad := record("x", 1, "salon", 200, 0)
		data, err := json.Marshal(Fixture{Providers: []models.ProviderRecord{bad}})
		require.NoError(t, err)
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		_, err = LoadMemoryProviderRepo(path)
		assert.ErrorContains(t, err, "invalid location")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMemoryProviderRepo(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

func TestHaversineMeters(t *testing.T) {
	a := models.NewGeoPoint(35.50, 33.51)
	assert.Zero(t, haversineMeters(a, a))
	assert.InDelta(t, 1000, haversineMeters(a, models.NewGeoPoint(35.50, 33.51+1000/metresPerDegree)), 1)
}
