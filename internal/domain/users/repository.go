package users

import "context"

// Repository es el contrato de persistencia de usuarios.
// GetBy* devuelve found=false cuando no existe; error queda para fallas del backend.
type Repository interface {
	Create(ctx context.Context, in Insert) (User, error)
	GetByID(ctx context.Context, id int) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int, p Patch) (User, bool, error)
}
