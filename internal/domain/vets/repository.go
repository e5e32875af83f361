package vets

import "context"

// Repository: List en orden de alta (id asc).
type Repository interface {
	Create(ctx context.Context, in Insert) (Vet, error)
	GetByID(ctx context.Context, id int) (Vet, bool, error)
	List(ctx context.Context) ([]Vet, error)
	Update(ctx context.Context, id int, p Patch) (Vet, bool, error)
}
