package donations

import "context"

// Repository: List en orden de alta (id asc).
type Repository interface {
	Create(ctx context.Context, in Insert) (Donation, error)
	GetByID(ctx context.Context, id int) (Donation, bool, error)
	List(ctx context.Context) ([]Donation, error)
	Update(ctx context.Context, id int, p Patch) (Donation, bool, error)
	// Contribute suma amount a RaisedAmount. No valida el monto.
	Contribute(ctx context.Context, id int, amount int) (Donation, bool, error)
}
