package providerRepo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// attributePipeline: $match -> $sort(rating desc, _id) -> window -> owner join.
func attributePipeline(criteria Criteria, window Window, users string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: criteria.Filter()}},
		{{Key: "$sort", Value: bson.D{
			{Key: "rating", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}
	pipeline = append(pipeline, windowStages(window)...)
	return append(pipeline, summaryStages(users)...)
}

// nearPipeline: $geoNear(radius + criteria) -> $sort(distance, _id) -> window -> owner join.
func nearPipeline(near NearQuery, criteria Criteria, window Window, users string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		geoNearStage(near, criteria),
		{{Key: "$sort", Value: bson.D{
			{Key: "distance", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}
	pipeline = append(pipeline, windowStages(window)...)
	return append(pipeline, summaryStages(users)...)
}

// nearCountPipeline re-runs the distance and criteria stages of nearPipeline
// and counts instead of paging.
func nearCountPipeline(near NearQuery, criteria Criteria) mongo.Pipeline {
	return mongo.Pipeline{
		geoNearStage(near, criteria),
		{{Key: "$count", Value: "total"}},
	}
}

// geoNearStage must be the first stage of its pipeline. The criteria go in its
// query field, which rejects $text.
func geoNearStage(near NearQuery, criteria Criteria) bson.D {
	return bson.D{{Key: "$geoNear", Value: bson.D{
		{Key: "near", Value: bson.D{
			{Key: "type", Value: "Point"},
			{Key: "coordinates", Value: near.Origin.Coordinates},
		}},
		{Key: "key", Value: "location"},
		{Key: "distanceField", Value: "distance"},
		{Key: "spherical", Value: true},
		{Key: "maxDistance", Value: near.MaxDistance},
		{Key: "query", Value: criteria.Filter()},
	}}}
}

func windowStages(window Window) mongo.Pipeline {
	var stages mongo.Pipeline
	if window.Skip > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: window.Skip}})
	}
	if window.Limit > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: window.Limit}})
	}
	return stages
}

// summaryStages joins the owner's public identity and drops per-service
// descriptions. Both paths end with these stages.
func summaryStages(users string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: users},
			{Key: "let", Value: bson.D{{Key: "ownerId", Value: "$ownerId"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$_id", "$$ownerId"}},
				}}}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 0},
					{Key: "name", Value: 1},
					{Key: "phone", Value: 1},
					{Key: "email", Value: 1},
				}}},
			}},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "services.description", Value: 0}}}},
	}
}
