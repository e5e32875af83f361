package mongodb

import (
	"context"

	"animal-sos/internal/domain/donations"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type donationRepo struct{ s *Storage }

func (r donationRepo) Create(ctx context.Context, in donations.Insert) (donations.Donation, error) {
	id, err := r.s.nextID(ctx, donationsColl)
	if err != nil {
		return donations.Donation{}, err
	}
	doc := donationDoc{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		GoalAmount:   in.GoalAmount,
		RaisedAmount: 0,
		ImageURL:     in.ImageURL,
		CreatedAt:    r.s.now(),
	}
	if err := insert(ctx, r.s.coll(donationsColl), doc); err != nil {
		return donations.Donation{}, err
	}
	return doc.domain(), nil
}

func (r donationRepo) GetByID(ctx context.Context, id int) (donations.Donation, bool, error) {
	doc, found, err := findOne[donationDoc](ctx, r.s.coll(donationsColl), bson.M{"id": id})
	if err != nil || !found {
		return donations.Donation{}, found, err
	}
	return doc.domain(), true, nil
}

func (r donationRepo) List(ctx context.Context) ([]donations.Donation, error) {
	docs, err := findMany[donationDoc](ctx, r.s.coll(donationsColl), bson.M{}, options.Find().SetSort(byIDAsc))
	if err != nil {
		return nil, err
	}
	return mapDocs(docs, donationDoc.domain), nil
}

func (r donationRepo) Update(ctx context.Context, id int, p donations.Patch) (donations.Donation, bool, error) {
	set := bson.M{}
	setIf(set, "title", p.Title)
	setIf(set, "description", p.Description)
	setIf(set, "goalAmount", p.GoalAmount)
	setIf(set, "imageUrl", p.ImageURL)

	doc, found, err := setByID[donationDoc](ctx, r.s.coll(donationsColl), id, set)
	if err != nil || !found {
		return donations.Donation{}, found, err
	}
	return doc.domain(), true, nil
}

// Contribute es un $inc atómico; concurrentes no pierden aportes.
func (r donationRepo) Contribute(ctx context.Context, id int, amount int) (donations.Donation, bool, error) {
	doc, found, err := updateByID[donationDoc](ctx, r.s.coll(donationsColl), id,
		bson.M{"$inc": bson.M{"raisedAmount": amount}})
	if err != nil || !found {
		return donations.Donation{}, found, err
	}
	return doc.domain(), true, nil
}
