package donations_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) *donations.Service {
	t.Helper()
	st := memory.New(memory.Options{Sessions: session.NewMemoryStore(session.MemoryOptions{}), SkipSeed: true})
	return donations.NewService(st.Donations())
}

func TestService_Create(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, donations.CreateInput{Title: "Shelter roof", Description: "fix it", GoalAmount: 1000})
	require.NoError(t, err)
	assert.Equal(t, 0, d.RaisedAmount)

	_, err = svc.Create(ctx, donations.CreateInput{Title: "No goal", Description: "x"})
	assert.ErrorIs(t, err, donations.ErrInvalidInput)
	_, err = svc.Create(ctx, donations.CreateInput{Title: " ", Description: "x", GoalAmount: 10})
	assert.ErrorIs(t, err, donations.ErrInvalidInput)
}

func TestService_Contribute(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, donations.CreateInput{Title: "Vet bills", Description: "x", GoalAmount: 100})
	require.NoError(t, err)

	for _, bad := range []int{0, -1} {
		_, err := svc.Contribute(ctx, d.ID, bad)
		assert.ErrorIs(t, err, donations.ErrInvalidAmount)
	}
	_, err = svc.Contribute(ctx, 77, 5)
	assert.ErrorIs(t, err, donations.ErrNotFound)

	// superar la meta está permitido
	got, err := svc.Contribute(ctx, d.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 150, got.RaisedAmount)
}

func TestService_Contribute_NeverWraps(t *testing.T) {
	st := memory.New(memory.Options{Sessions: session.NewMemoryStore(session.MemoryOptions{}), SkipSeed: true})
	repo := st.Donations()
	svc := donations.NewService(repo)
	ctx := context.Background()

	d, err := svc.Create(ctx, donations.CreateInput{Title: "Big goal", Description: "x", GoalAmount: 100})
	require.NoError(t, err)

	_, err = svc.Contribute(ctx, d.ID, donations.MaxContribution+1)
	assert.ErrorIs(t, err, donations.ErrInvalidAmount)
	_, err = svc.Contribute(ctx, d.ID, math.MaxInt)
	assert.ErrorIs(t, err, donations.ErrInvalidAmount)

	// el storage no valida; dejamos la campaña al borde del máximo
	_, _, err = repo.Contribute(ctx, d.ID, math.MaxInt-5)
	require.NoError(t, err)

	_, err = svc.Contribute(ctx, d.ID, 10)
	assert.ErrorIs(t, err, donations.ErrInvalidAmount)

	got, err := svc.Contribute(ctx, d.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got.RaisedAmount)

	_, err = svc.Contribute(ctx, d.ID, 1)
	assert.ErrorIs(t, err, donations.ErrInvalidAmount)

	after, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, after.RaisedAmount)
}

func TestService_Contribute_Concurrent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, donations.CreateInput{Title: "Food", Description: "x", GoalAmount: 10000})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Contribute(ctx, d.ID, 10)
		}()
	}
	wg.Wait()

	got, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.RaisedAmount)
}

func TestService_Update_KeepsRaisedAmount(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, donations.CreateInput{Title: "Food", Description: "x", GoalAmount: 100})
	require.NoError(t, err)
	_, err = svc.Contribute(ctx, d.ID, 40)
	require.NoError(t, err)

	upd, err := svc.Update(ctx, d.ID, donations.Patch{GoalAmount: ptr(200)})
	require.NoError(t, err)
	assert.Equal(t, 200, upd.GoalAmount)
	assert.Equal(t, 40, upd.RaisedAmount)

	_, err = svc.Update(ctx, d.ID, donations.Patch{GoalAmount: ptr(0)})
	assert.ErrorIs(t, err, donations.ErrInvalidInput)
	_, err = svc.Update(ctx, 99, donations.Patch{Title: ptr("x")})
	assert.ErrorIs(t, err, donations.ErrNotFound)
}
