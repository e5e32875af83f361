package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func index(keys ...bson.E) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D(keys)}
}

var newestFirstKeys = []bson.E{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}

// EnsureIndexes crea los índices si no existen. Es idempotente.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	spec := map[string][]mongo.IndexModel{
		usersColl: {uniqueIndex("id"), uniqueIndex("username"), uniqueIndex("email")},
		reportsColl: {
			uniqueIndex("id"),
			index(newestFirstKeys...),
			index(bson.E{Key: "status", Value: 1}),
			index(bson.E{Key: "userId", Value: 1}),
		},
		vetsColl: {uniqueIndex("id")},
		adoptionsColl: {
			uniqueIndex("id"),
			index(newestFirstKeys...),
			index(bson.E{Key: "type", Value: 1}),
			index(bson.E{Key: "status", Value: 1}),
		},
		donationsColl: {uniqueIndex("id")},
		postsColl: {
			uniqueIndex("id"),
			index(newestFirstKeys...),
			index(bson.E{Key: "userId", Value: 1}),
		},
	}

	for _, name := range entityCollections {
		if _, err := s.coll(name).Indexes().CreateMany(ctx, spec[name]); err != nil {
			return fmt.Errorf("mongodb: indexes for %s: %w", name, err)
		}
	}
	return nil
}
