package adoptions

import "context"

// Repository: listados del más nuevo al más viejo (createdAt desc, id desc).
type Repository interface {
	Create(ctx context.Context, in Insert) (Adoption, error)
	GetByID(ctx context.Context, id int) (Adoption, bool, error)
	List(ctx context.Context) ([]Adoption, error)
	ListByType(ctx context.Context, animalType string) ([]Adoption, error)
	ListByStatus(ctx context.Context, status Status) ([]Adoption, error)
	Update(ctx context.Context, id int, p Patch) (Adoption, bool, error)
}
