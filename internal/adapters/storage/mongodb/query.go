package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	byIDAsc     = bson.D{{Key: "id", Value: 1}}
	newestFirst = bson.D(newestFirstKeys)
)

// findOne devuelve found=false ante ErrNoDocuments; cualquier otro error se propaga envuelto.
func findOne[D any](ctx context.Context, c *mongo.Collection, filter any) (D, bool, error) {
	var doc D
	err := c.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, fmt.Errorf("mongodb: find %s: %w", c.Name(), err)
	}
	return doc, true, nil
}

func findMany[D any](ctx context.Context, c *mongo.Collection, filter any, opts *options.FindOptions) ([]D, error) {
	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: find %s: %w", c.Name(), err)
	}
	out := make([]D, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongodb: decode %s: %w", c.Name(), err)
	}
	return out, nil
}

// updateByID aplica update sobre el documento con ese id y devuelve la versión nueva.
func updateByID[D any](ctx context.Context, c *mongo.Collection, id int, update bson.M) (D, bool, error) {
	var doc D
	err := c.FindOneAndUpdate(ctx, bson.M{"id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, fmt.Errorf("mongodb: update %s: %w", c.Name(), err)
	}
	return doc, true, nil
}

// setByID hace $set de los campos; sin campos es un findOne.
func setByID[D any](ctx context.Context, c *mongo.Collection, id int, set bson.M) (D, bool, error) {
	if len(set) == 0 {
		return findOne[D](ctx, c, bson.M{"id": id})
	}
	return updateByID[D](ctx, c, id, bson.M{"$set": set})
}

func insert(ctx context.Context, c *mongo.Collection, doc any) error {
	if _, err := c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongodb: insert %s: %w", c.Name(), err)
	}
	return nil
}

// setIf agrega key al $set si el puntero no es nil.
func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}

func mapDocs[D any, E any](docs []D, fn func(D) E) []E {
	out := make([]E, 0, len(docs))
	for _, d := range docs {
		out = append(out, fn(d))
	}
	return out
}
