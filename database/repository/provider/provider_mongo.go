package providerRepo

import (
	"context"
	"fmt"

	"providerhub/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ProvidersCollection = "providers"
	UsersCollection     = "users"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll  *mongo.Collection
	users string
}

// NewMongoProviderRepo reads providers from db and joins owners from its users collection.
func NewMongoProviderRepo(db *mongo.Database) *MongoProviderRepo {
	return &MongoProviderRepo{
		coll:  db.Collection(ProvidersCollection),
		users: UsersCollection,
	}
}

func (r *MongoProviderRepo) FindByAttributes(ctx context.Context, criteria Criteria, window Window) ([]models.ProviderMatch, error) {
	providers, err := r.aggregate(ctx, attributePipeline(criteria, window, r.users))
	if err != nil {
		return nil, fmt.Errorf("attribute search failed: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) CountByAttributes(ctx context.Context, criteria Criteria) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, criteria.Filter())
	if err != nil {
		return 0, fmt.Errorf("attribute count failed: %w", err)
	}
	return total, nil
}

func (r *MongoProviderRepo) FindNear(ctx context.Context, near NearQuery, criteria Criteria, window Window) ([]models.ProviderMatch, error) {
	providers, err := r.aggregate(ctx, nearPipeline(near, criteria, window, r.users))
	if err != nil {
		return nil, fmt.Errorf("spatial search failed: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) CountNear(ctx context.Context, near NearQuery, criteria Criteria) (int64, error) {
	cursor, err := r.coll.Aggregate(ctx, nearCountPipeline(near, criteria))
	if err != nil {
		return 0, fmt.Errorf("spatial count failed: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode spatial count: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("spatial count cursor error: %w", err)
	}
	// $count emits no document at all when nothing matched.
	return result.Total, nil
}

func (r *MongoProviderRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoProviderRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.ProviderMatch, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	providers := []models.ProviderMatch{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}
