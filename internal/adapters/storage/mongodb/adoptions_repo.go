package mongodb

import (
	"context"

	"animal-sos/internal/domain/adoptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type adoptionRepo struct{ s *Storage }

func (r adoptionRepo) Create(ctx context.Context, in adoptions.Insert) (adoptions.Adoption, error) {
	id, err := r.s.nextID(ctx, adoptionsColl)
	if err != nil {
		return adoptions.Adoption{}, err
	}
	status := in.Status
	if status == "" {
		status = adoptions.StatusAvailable
	}
	doc := adoptionDoc{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		Breed:       in.Breed,
		Age:         in.Age,
		Gender:      in.Gender,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      string(status),
		CreatedAt:   r.s.now(),
	}
	if err := insert(ctx, r.s.coll(adoptionsColl), doc); err != nil {
		return adoptions.Adoption{}, err
	}
	return doc.domain(), nil
}

func (r adoptionRepo) GetByID(ctx context.Context, id int) (adoptions.Adoption, bool, error) {
	doc, found, err := findOne[adoptionDoc](ctx, r.s.coll(adoptionsColl), bson.M{"id": id})
	if err != nil || !found {
		return adoptions.Adoption{}, found, err
	}
	return doc.domain(), true, nil
}

func (r adoptionRepo) list(ctx context.Context, filter bson.M) ([]adoptions.Adoption, error) {
	docs, err := findMany[adoptionDoc](ctx, r.s.coll(adoptionsColl), filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	return mapDocs(docs, adoptionDoc.domain), nil
}

func (r adoptionRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.list(ctx, bson.M{})
}

func (r adoptionRepo) ListByType(ctx context.Context, animalType string) ([]adoptions.Adoption, error) {
	return r.list(ctx, bson.M{"type": animalType})
}

func (r adoptionRepo) ListByStatus(ctx context.Context, status adoptions.Status) ([]adoptions.Adoption, error) {
	return r.list(ctx, bson.M{"status": string(status)})
}

func (r adoptionRepo) Update(ctx context.Context, id int, p adoptions.Patch) (adoptions.Adoption, bool, error) {
	set := bson.M{}
	setIf(set, "name", p.Name)
	setIf(set, "type", p.Type)
	setIf(set, "breed", p.Breed)
	setIf(set, "age", p.Age)
	setIf(set, "gender", p.Gender)
	setIf(set, "description", p.Description)
	setIf(set, "imageUrl", p.ImageURL)
	setIf(set, "status", p.Status)

	doc, found, err := setByID[adoptionDoc](ctx, r.s.coll(adoptionsColl), id, set)
	if err != nil || !found {
		return adoptions.Adoption{}, found, err
	}
	return doc.domain(), true, nil
}
