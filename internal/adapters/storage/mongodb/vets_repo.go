package mongodb

import (
	"context"

	"animal-sos/internal/domain/vets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type vetRepo struct{ s *Storage }

func (r vetRepo) Create(ctx context.Context, in vets.Insert) (vets.Vet, error) {
	id, err := r.s.nextID(ctx, vetsColl)
	if err != nil {
		return vets.Vet{}, err
	}
	doc := vetDocFrom(id, in)
	if err := insert(ctx, r.s.coll(vetsColl), doc); err != nil {
		return vets.Vet{}, err
	}
	return doc.domain(), nil
}

func (r vetRepo) GetByID(ctx context.Context, id int) (vets.Vet, bool, error) {
	doc, found, err := findOne[vetDoc](ctx, r.s.coll(vetsColl), bson.M{"id": id})
	if err != nil || !found {
		return vets.Vet{}, found, err
	}
	return doc.domain(), true, nil
}

func (r vetRepo) List(ctx context.Context) ([]vets.Vet, error) {
	docs, err := findMany[vetDoc](ctx, r.s.coll(vetsColl), bson.M{}, options.Find().SetSort(byIDAsc))
	if err != nil {
		return nil, err
	}
	return mapDocs(docs, vetDoc.domain), nil
}

func (r vetRepo) Update(ctx context.Context, id int, p vets.Patch) (vets.Vet, bool, error) {
	set := bson.M{}
	setIf(set, "name", p.Name)
	setIf(set, "address", p.Address)
	setIf(set, "phone", p.Phone)
	setIf(set, "email", p.Email)
	setIf(set, "latitude", p.Latitude)
	setIf(set, "longitude", p.Longitude)
	setIf(set, "rating", p.Rating)
	setIf(set, "isOpen", p.IsOpen)

	doc, found, err := setByID[vetDoc](ctx, r.s.coll(vetsColl), id, set)
	if err != nil || !found {
		return vets.Vet{}, found, err
	}
	return doc.domain(), true, nil
}
