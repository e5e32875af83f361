package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

// nextIDs reserva n ids consecutivos para la colección y devuelve el último.
func (s *Storage) nextIDs(ctx context.Context, name string, n int) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.coll(countersColl).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": n}}, opts).
		Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("mongodb: next id for %s: %w", name, err)
	}
	return doc.Seq, nil
}

func (s *Storage) nextID(ctx context.Context, name string) (int, error) {
	return s.nextIDs(ctx, name, 1)
}

// SyncCounters lleva cada contador al menos al máximo id existente en su colección.
// Mantiene compatibles las bases que asignaban ids por escaneo del máximo.
func (s *Storage) SyncCounters(ctx context.Context) error {
	for _, name := range entityCollections {
		var top struct {
			ID int `bson:"id"`
		}
		err := s.coll(name).FindOne(ctx, bson.M{}, options.FindOne().
			SetSort(bson.D{{Key: "id", Value: -1}}).
			SetProjection(bson.M{"id": 1, "_id": 0}),
		).Decode(&top)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return fmt.Errorf("mongodb: max id for %s: %w", name, err)
		}

		_, err = s.coll(countersColl).UpdateOne(ctx,
			bson.M{"_id": name},
			bson.M{"$max": bson.M{"seq": top.ID}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("mongodb: sync counter %s: %w", name, err)
		}
	}
	return nil
}
