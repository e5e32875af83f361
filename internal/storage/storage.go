// Package storage define el contrato único de persistencia. Hay dos motores: memory y mongodb.
package storage

import (
	"context"

	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/posts"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
	"animal-sos/internal/session"
)

// Storage agrupa los repositorios de las seis entidades y el session store.
// Ambos motores aplican el mismo orden en los listados:
// reports, adoptions y posts del más nuevo al más viejo; users, vets y donations por id.
type Storage interface {
	Users() users.Repository
	Reports() reports.Repository
	Vets() vets.Repository
	Adoptions() adoptions.Repository
	Donations() donations.Repository
	Posts() posts.Repository

	SessionStore() session.Store

	// Close libera la conexión del motor. No cierra el session store.
	Close(ctx context.Context) error
}

const (
	DriverMemory  = "memory"
	DriverMongoDB = "mongodb"
)
