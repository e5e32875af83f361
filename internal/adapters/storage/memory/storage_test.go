package memory_test

import (
	"context"
	"testing"
	"time"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/session"
	"animal-sos/internal/storage"
	"animal-sos/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Storage = (*memory.Storage)(nil)

func newEmpty(t *testing.T) storage.Storage {
	sessions := session.NewMemoryStore(session.MemoryOptions{})
	t.Cleanup(func() { _ = sessions.Close() })
	return memory.New(memory.Options{Sessions: sessions, SkipSeed: true})
}

func TestStorage_Contract(t *testing.T) {
	storagetest.Run(t, newEmpty)
}

func TestStorage_SeedData(t *testing.T) {
	s := memory.New(memory.Options{Sessions: session.NewMemoryStore(session.MemoryOptions{})})
	ctx := context.Background()

	u, found, err := s.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, users.RoleAdmin, u.Role)
	assert.Equal(t, memory.DefaultAdminPasswordHash, u.Password)

	vs, err := s.Vets().List(ctx)
	require.NoError(t, err)
	assert.Len(t, vs, 2)

	ads, err := s.Adoptions().List(ctx)
	require.NoError(t, err)
	assert.Len(t, ads, 2)

	ds, err := s.Donations().List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 5000, ds[0].GoalAmount)
	assert.Equal(t, 2500, ds[0].RaisedAmount)
	assert.Equal(t, 10000, ds[1].GoalAmount)
	assert.Equal(t, 7500, ds[1].RaisedAmount)

	rs, err := s.Reports().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	// mismo createdAt: desempata id desc
	assert.Equal(t, 2, rs[0].ID)
	assert.Equal(t, reports.StatusPending, rs[0].Status)
	assert.Equal(t, reports.UrgencyUrgent, rs[1].Urgency)

	// los ids siguen después del seed
	d, err := s.Donations().Create(ctx, donations.Insert{Title: "x", Description: "y", GoalAmount: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, d.ID)
}

func TestStorage_SeedIdempotent(t *testing.T) {
	s := memory.New(memory.Options{Sessions: session.NewMemoryStore(session.MemoryOptions{})})

	assert.False(t, s.Seed(""))

	vs, err := s.Vets().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, vs, 2)
}

func TestStorage_CustomAdminHash(t *testing.T) {
	s := memory.New(memory.Options{
		Sessions:          session.NewMemoryStore(session.MemoryOptions{}),
		AdminPasswordHash: "abc.def",
	})

	u, _, err := s.Users().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "abc.def", u.Password)
}

func TestStorage_DonationScenario(t *testing.T) {
	s := memory.New(memory.Options{Sessions: session.NewMemoryStore(session.MemoryOptions{})})
	ctx := context.Background()

	d, found, err := s.Donations().Contribute(ctx, 1, 100)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2600, d.RaisedAmount)
}

func TestStorage_InjectedClock(t *testing.T) {
	at := time.Date(2024, 3, 10, 15, 4, 5, 999_999_999, time.FixedZone("ART", -3*3600))
	s := memory.New(memory.Options{
		Sessions: session.NewMemoryStore(session.MemoryOptions{}),
		SkipSeed: true,
		Now:      func() time.Time { return at },
	})

	u, err := s.Users().Create(context.Background(), users.Insert{Username: "a", Password: "p", Email: "a@x", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 18, 4, 5, 999_000_000, time.UTC), u.CreatedAt)
}

func TestStorage_SessionStoreInjected(t *testing.T) {
	sessions := session.NewMemoryStore(session.MemoryOptions{})
	s := memory.New(memory.Options{Sessions: sessions, SkipSeed: true})

	assert.Same(t, sessions, s.SessionStore())
	require.NoError(t, s.Close(context.Background()))
}
