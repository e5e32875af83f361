package posts

import "context"

// Repository: listados del más nuevo al más viejo (createdAt desc, id desc).
type Repository interface {
	Create(ctx context.Context, in Insert) (Post, error)
	GetByID(ctx context.Context, id int) (Post, bool, error)
	List(ctx context.Context) ([]Post, error)
	ListByUser(ctx context.Context, userID int) ([]Post, error)
	Update(ctx context.Context, id int, p Patch) (Post, bool, error)
}
