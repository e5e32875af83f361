// Package memory es el motor de storage en memoria: seis slices, un contador de id por entidad
// y un único RWMutex. Todo lo que sale del motor es una copia.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/posts"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
	"animal-sos/internal/session"
)

type Options struct {
	Sessions session.Store
	Now      func() time.Time

	// SkipSeed arranca vacío (tests de contrato).
	SkipSeed bool
	// AdminPasswordHash reemplaza el hash del admin de ejemplo (formato hex(hash).salt).
	AdminPasswordHash string
}

type counters struct {
	user, report, vet, adoption, donation, post int
}

type Storage struct {
	mu sync.RWMutex

	users     []users.User
	reports   []reports.Report
	vets      []vets.Vet
	adoptions []adoptions.Adoption
	donations []donations.Donation
	posts     []posts.Post

	next counters

	sessions session.Store
	clock    func() time.Time
	seeded   bool
}

func New(opts Options) *Storage {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore(session.MemoryOptions{CheckPeriod: session.DefaultCheckPeriod})
	}

	s := &Storage{
		next:     counters{1, 1, 1, 1, 1, 1},
		sessions: opts.Sessions,
		clock:    opts.Now,
	}
	if !opts.SkipSeed {
		s.Seed(opts.AdminPasswordHash)
	}
	return s
}

// now en UTC con precisión de milisegundos, igual que lo que persiste MongoDB.
func (s *Storage) now() time.Time {
	return s.clock().UTC().Truncate(time.Millisecond)
}

func (s *Storage) Users() users.Repository         { return userRepo{s} }
func (s *Storage) Reports() reports.Repository     { return reportRepo{s} }
func (s *Storage) Vets() vets.Repository           { return vetRepo{s} }
func (s *Storage) Adoptions() adoptions.Repository { return adoptionRepo{s} }
func (s *Storage) Donations() donations.Repository { return donationRepo{s} }
func (s *Storage) Posts() posts.Repository         { return postRepo{s} }

func (s *Storage) SessionStore() session.Store { return s.sessions }

// Close no hace nada: no hay conexión que liberar.
func (s *Storage) Close(ctx context.Context) error { return nil }

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// newestFirst ordena por createdAt desc y desempata por id desc.
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}
