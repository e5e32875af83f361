package reports

import "context"

// Repository: listados del más nuevo al más viejo (createdAt desc, id desc).
type Repository interface {
	Create(ctx context.Context, in Insert) (Report, error)
	GetByID(ctx context.Context, id int) (Report, bool, error)
	// List con limit <= 0 devuelve todos.
	List(ctx context.Context, limit int) ([]Report, error)
	ListByStatus(ctx context.Context, status Status) ([]Report, error)
	ListByUser(ctx context.Context, userID int) ([]Report, error)
	Update(ctx context.Context, id int, p Patch) (Report, bool, error)
}
