// Package mongodb es el motor de storage sobre MongoDB. Una colección por entidad; el id de dominio
// es un campo indexado ("id") asignado desde la colección counters, nunca el _id.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/posts"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
	"animal-sos/internal/platform/logger"
	"animal-sos/internal/session"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersColl     = "users"
	reportsColl   = "reports"
	vetsColl      = "vets"
	adoptionsColl = "adoptions"
	donationsColl = "donations"
	postsColl     = "posts"
	countersColl  = "counters"
)

var entityCollections = []string{usersColl, reportsColl, vetsColl, adoptionsColl, donationsColl, postsColl}

const DefaultDatabase = "animal_sos"

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type Storage struct {
	client   *mongo.Client // nil si la conexión la maneja otro (New)
	db       *mongo.Database
	sessions session.Store
	log      logger.Logger
	clock    func() time.Time
}

// Connect conecta, hace ping, crea índices y sincroniza contadores.
// Si algo falla la conexión se cierra y se devuelve el error; no hay reintentos.
func Connect(ctx context.Context, cfg Config, sessions session.Store, log logger.Logger) (*Storage, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, errors.New("mongodb: uri required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	s := New(client.Database(cfg.Database), sessions, log)
	s.client = client

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := s.SyncCounters(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s.log.Info("mongodb connected", map[string]any{"database": cfg.Database})
	return s, nil
}

// New envuelve una base ya conectada. No crea índices ni cierra el cliente en Close.
func New(db *mongo.Database, sessions session.Store, log logger.Logger) *Storage {
	if log == nil {
		log = logger.NewNop()
	}
	if sessions == nil {
		sessions = session.NewMemoryStore(session.MemoryOptions{CheckPeriod: session.DefaultCheckPeriod})
	}
	return &Storage{
		db:       db,
		sessions: sessions,
		log:      log.With(map[string]any{"component": "mongodb"}),
		clock:    time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (s *Storage) SetClock(now func() time.Time) { s.clock = now }

func (s *Storage) now() time.Time {
	return s.clock().UTC().Truncate(time.Millisecond)
}

func (s *Storage) coll(name string) *mongo.Collection { return s.db.Collection(name) }

func (s *Storage) Users() users.Repository         { return userRepo{s} }
func (s *Storage) Reports() reports.Repository     { return reportRepo{s} }
func (s *Storage) Vets() vets.Repository           { return vetRepo{s} }
func (s *Storage) Adoptions() adoptions.Repository { return adoptionRepo{s} }
func (s *Storage) Donations() donations.Repository { return donationRepo{s} }
func (s *Storage) Posts() posts.Repository         { return postRepo{s} }

func (s *Storage) SessionStore() session.Store { return s.sessions }

func (s *Storage) Database() *mongo.Database { return s.db }

func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: disconnect: %w", err)
	}
	return nil
}
