package auth

import "context"

// SessionResolver traduce un session id (cookie) o un user id (modo dev) a claims.
// found=false significa "sin identidad"; error queda para fallas del backend.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sid string) (Claims, bool, error)
	ResolveUser(ctx context.Context, userID int) (Claims, bool, error)
}
