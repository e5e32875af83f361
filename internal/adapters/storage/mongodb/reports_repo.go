package mongodb

import (
	"context"

	"animal-sos/internal/domain/reports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reportRepo struct{ s *Storage }

func (r reportRepo) Create(ctx context.Context, in reports.Insert) (reports.Report, error) {
	id, err := r.s.nextID(ctx, reportsColl)
	if err != nil {
		return reports.Report{}, err
	}
	status := in.Status
	if status == "" {
		status = reports.StatusPending
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = reports.UrgencyNormal
	}
	now := r.s.now()
	doc := reportDoc{
		ID:          id,
		UserID:      in.UserID,
		AnimalType:  in.AnimalType,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      string(status),
		Urgency:     string(urgency),
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := insert(ctx, r.s.coll(reportsColl), doc); err != nil {
		return reports.Report{}, err
	}
	return doc.domain(), nil
}

func (r reportRepo) GetByID(ctx context.Context, id int) (reports.Report, bool, error) {
	doc, found, err := findOne[reportDoc](ctx, r.s.coll(reportsColl), bson.M{"id": id})
	if err != nil || !found {
		return reports.Report{}, found, err
	}
	return doc.domain(), true, nil
}

func (r reportRepo) list(ctx context.Context, filter bson.M, limit int) ([]reports.Report, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	docs, err := findMany[reportDoc](ctx, r.s.coll(reportsColl), filter, opts)
	if err != nil {
		return nil, err
	}
	return mapDocs(docs, reportDoc.domain), nil
}

func (r reportRepo) List(ctx context.Context, limit int) ([]reports.Report, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r reportRepo) ListByStatus(ctx context.Context, status reports.Status) ([]reports.Report, error) {
	return r.list(ctx, bson.M{"status": string(status)}, 0)
}

func (r reportRepo) ListByUser(ctx context.Context, userID int) ([]reports.Report, error) {
	return r.list(ctx, bson.M{"userId": userID}, 0)
}

func (r reportRepo) Update(ctx context.Context, id int, p reports.Patch) (reports.Report, bool, error) {
	set := bson.M{"updatedAt": r.s.now()}
	setIf(set, "animalType", p.AnimalType)
	setIf(set, "description", p.Description)
	setIf(set, "location", p.Location)
	setIf(set, "latitude", p.Latitude)
	setIf(set, "longitude", p.Longitude)
	setIf(set, "status", p.Status)
	setIf(set, "urgency", p.Urgency)
	setIf(set, "imageUrl", p.ImageURL)

	doc, found, err := setByID[reportDoc](ctx, r.s.coll(reportsColl), id, set)
	if err != nil || !found {
		return reports.Report{}, found, err
	}
	return doc.domain(), true, nil
}
