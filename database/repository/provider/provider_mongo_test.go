package providerRepo

import (
	"context"
	"testing"

	"providerhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, len(p))
	for i, stage := range p {
		names[i] = stage[0].Key
	}
	return names
}

func TestAttributePipeline(t *testing.T) {
	criteria := Criteria{Category: "salon"}
	p := attributePipeline(criteria, Window{Skip: 10, Limit: 5}, UsersCollection)

	assert.Equal(t, []string{"$match", "$sort", "$skip", "$limit", "$lookup", "$unwind", "$project"}, stageNames(p))
	assert.Equal(t, criteria.Filter(), p[0][0].Value)
	assert.Equal(t, bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}, p[1][0].Value)

	first := attributePipeline(criteria, Window{Limit: 5}, UsersCollection)
	assert.NotContains(t, stageNames(first), "$skip")
}

func TestNearPipelines(t *testing.T) {
	near := NearQuery{Origin: models.NewGeoPoint(35.5, 33.51), MaxDistance: MaxSearchDistanceMeters}
	criteria := Criteria{Terms: []string{"hair"}, MinRating: ptr(3)}

	page := nearPipeline(near, criteria, Window{Limit: 10}, UsersCollection)
	assert.Equal(t, []string{"$geoNear", "$sort", "$limit", "$lookup", "$unwind", "$project"}, stageNames(page))

	geo := page[0][0].Value.(bson.D).Map()
	assert.Equal(t, "location", geo["key"])
	assert.Equal(t, true, geo["spherical"])
	assert.Equal(t, MaxSearchDistanceMeters, geo["maxDistance"])
	assert.Equal(t, criteria.Filter(), geo["query"])
	assert.Equal(t, bson.D{{Key: "distance", Value: 1}, {Key: "_id", Value: 1}}, page[1][0].Value)

	count := nearCountPipeline(near, criteria)
	assert.Equal(t, []string{"$geoNear", "$count"}, stageNames(count))
	assert.Equal(t, page[0], count[0])
}

func TestSummaryStagesProjectOwnerIdentity(t *testing.T) {
	stages := summaryStages(UsersCollection)
	lookup := stages[0][0].Value.(bson.D).Map()
	assert.Equal(t, UsersCollection, lookup["from"])
	assert.Equal(t, "owner", lookup["as"])

	inner := lookup["pipeline"].(bson.A)
	project := inner[1].(bson.D)[0].Value.(bson.D).Map()
	assert.Equal(t, map[string]interface{}{"_id": 0, "name": 1, "phone": 1, "email": 1}, map[string]interface{}(project))

	assert.Equal(t, bson.D{{Key: "services.description", Value: 0}}, stages[2][0].Value)
}

func TestMongoProviderRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "providerhub.providers"

	mt.Run("find decodes joined matches", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "p1"},
				{Key: "businessName", Value: "Glow"},
				{Key: "rating", Value: 4.5},
				{Key: "owner", Value: bson.D{{Key: "name", Value: "Rana"}, {Key: "email", Value: "rana@example.com"}}},
			},
			bson.D{
				{Key: "_id", Value: "p2"},
				{Key: "businessName", Value: "Shine"},
				{Key: "rating", Value: 4.0},
			},
		))

		got, err := repo.FindByAttributes(context.Background(), Criteria{}, Window{Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "p1", got[0].ID)
		require.NotNil(mt, got[0].Owner)
		assert.Equal(mt, "Rana", got[0].Owner.Name)
		assert.Nil(mt, got[1].Owner)
	})

	mt.Run("find returns empty slice for no rows", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := repo.FindNear(context.Background(), NearQuery{Origin: models.NewGeoPoint(0, 0), MaxDistance: 10}, Criteria{}, Window{Limit: 10})
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("count by attributes", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(7)}}))

		total, err := repo.CountByAttributes(context.Background(), Criteria{Category: "salon"})
		require.NoError(mt, err)
		assert.EqualValues(mt, 7, total)
	})

	mt.Run("count near", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "total", Value: int32(3)}}))

		total, err := repo.CountNear(context.Background(), NearQuery{Origin: models.NewGeoPoint(0, 0), MaxDistance: 10}, Criteria{})
		require.NoError(mt, err)
		assert.EqualValues(mt, 3, total)
	})

	mt.Run("count near with no matches", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		total, err := repo.CountNear(context.Background(), NearQuery{Origin: models.NewGeoPoint(0, 0), MaxDistance: 10}, Criteria{})
		require.NoError(mt, err)
		assert.Zero(mt, total)
	})

	mt.Run("store errors are wrapped", func(mt *mtest.T) {
		repo := NewMongoProviderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "geo near accepts just one argument",
		}))

		_, err := repo.FindNear(context.Background(), NearQuery{Origin: models.NewGeoPoint(0, 0), MaxDistance: 10}, Criteria{}, Window{Limit: 10})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "spatial search failed")

		var cmdErr mongo.CommandError
		assert.ErrorAs(mt, err, &cmdErr)
	})
}
