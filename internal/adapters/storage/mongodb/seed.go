package mongodb

import (
	"context"
	"fmt"

	"animal-sos/internal/domain/vets"

	"go.mongodb.org/mongo-driver/bson"
)

func ptr[T any](v T) *T { return &v }

var sampleVets = []vets.Insert{
	{
		Name:      "Animal Care Clinic",
		Address:   "123 Main St, City Center",
		Phone:     "555-123-4567",
		Email:     ptr("info@animalcareclinic.com"),
		Latitude:  ptr("40.7128"),
		Longitude: ptr("-74.0060"),
		Rating:    ptr(4),
		IsOpen:    ptr(true),
	},
	{
		Name:      "Pet Wellness Center",
		Address:   "456 Oak Ave, Westside",
		Phone:     "555-987-6543",
		Email:     ptr("care@petwellness.com"),
		Latitude:  ptr("40.7282"),
		Longitude: ptr("-73.9942"),
		Rating:    ptr(5),
		IsOpen:    ptr(true),
	},
	{
		Name:      "Emergency Animal Hospital",
		Address:   "789 Pine Rd, Northside",
		Phone:     "555-456-7890",
		Email:     ptr("help@emergencyvet.com"),
		Latitude:  ptr("40.7369"),
		Longitude: ptr("-74.0102"),
		Rating:    ptr(4),
		IsOpen:    ptr(true),
	},
}

// SeedVets carga las veterinarias de ejemplo si la colección está vacía.
// Devuelve true si insertó algo.
func (s *Storage) SeedVets(ctx context.Context) (bool, error) {
	n, err := s.coll(vetsColl).CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, fmt.Errorf("mongodb: count vets: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	last, err := s.nextIDs(ctx, vetsColl, len(sampleVets))
	if err != nil {
		return false, err
	}
	first := last - len(sampleVets) + 1

	docs := make([]any, 0, len(sampleVets))
	for i, in := range sampleVets {
		docs = append(docs, vetDocFrom(first+i, in))
	}
	if _, err := s.coll(vetsColl).InsertMany(ctx, docs); err != nil {
		return false, fmt.Errorf("mongodb: seed vets: %w", err)
	}

	s.log.Info("initial vet data seeded", map[string]any{"count": len(docs)})
	return true, nil
}
