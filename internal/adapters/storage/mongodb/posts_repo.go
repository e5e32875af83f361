package mongodb

import (
	"context"

	"animal-sos/internal/domain/posts"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postRepo struct{ s *Storage }

func (r postRepo) Create(ctx context.Context, in posts.Insert) (posts.Post, error) {
	id, err := r.s.nextID(ctx, postsColl)
	if err != nil {
		return posts.Post{}, err
	}
	doc := postDoc{
		ID:        id,
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		CreatedAt: r.s.now(),
	}
	if err := insert(ctx, r.s.coll(postsColl), doc); err != nil {
		return posts.Post{}, err
	}
	return doc.domain(), nil
}

func (r postRepo) GetByID(ctx context.Context, id int) (posts.Post, bool, error) {
	doc, found, err := findOne[postDoc](ctx, r.s.coll(postsColl), bson.M{"id": id})
	if err != nil || !found {
		return posts.Post{}, found, err
	}
	return doc.domain(), true, nil
}

func (r postRepo) list(ctx context.Context, filter bson.M) ([]posts.Post, error) {
	docs, err := findMany[postDoc](ctx, r.s.coll(postsColl), filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	return mapDocs(docs, postDoc.domain), nil
}

func (r postRepo) List(ctx context.Context) ([]posts.Post, error) {
	return r.list(ctx, bson.M{})
}

func (r postRepo) ListByUser(ctx context.Context, userID int) ([]posts.Post, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r postRepo) Update(ctx context.Context, id int, p posts.Patch) (posts.Post, bool, error) {
	set := bson.M{}
	setIf(set, "title", p.Title)
	setIf(set, "content", p.Content)
	setIf(set, "imageUrl", p.ImageURL)

	doc, found, err := setByID[postDoc](ctx, r.s.coll(postsColl), id, set)
	if err != nil || !found {
		return posts.Post{}, found, err
	}
	return doc.domain(), true, nil
}
