// Package session define el store de sesiones HTTP y su implementación en memoria.
package session

import (
	"context"
	"time"
)

const (
	DefaultTTL         = 24 * time.Hour
	DefaultCheckPeriod = 24 * time.Hour
)

// Store guarda el payload opaco de una sesión por id.
// Las entradas vencen TTL después del último Set; en ese instante exacto ya no son válidas.
type Store interface {
	// Get devuelve found=false si la sesión no existe o ya venció.
	Get(ctx context.Context, sid string) ([]byte, bool, error)
	Set(ctx context.Context, sid string, data []byte) error
	Destroy(ctx context.Context, sid string) error
	Close() error
}
