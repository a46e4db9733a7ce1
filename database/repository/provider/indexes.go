package providerRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the search pipelines rely on.
func (r *MongoProviderRepo) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		// $geoNear requires exactly one 2dsphere index on the key it names.
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{
			Keys: bson.D{
				{Key: "businessName", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "services.name", Value: "text"},
			},
			Options: options.Index().SetName("provider_text").SetWeights(bson.D{
				{Key: "businessName", Value: 10},
				{Key: "services.name", Value: 5},
				{Key: "description", Value: 1},
			}),
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
