package adoptions_test

import (
	"context"
	"testing"
	"time"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) *adoptions.Service {
	t.Helper()
	// reloj que avanza 1s por llamada para que el orden por fecha sea determinista
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	st := memory.New(memory.Options{
		Sessions: session.NewMemoryStore(session.MemoryOptions{}),
		SkipSeed: true,
		Now: func() time.Time {
			n++
			return base.Add(time.Duration(n) * time.Second)
		},
	})
	return adoptions.NewService(st.Adoptions())
}

func pet(name, kind string) adoptions.Insert {
	return adoptions.Insert{Name: name, Type: kind, Age: "1 year", Gender: "female", Description: "sweet"}
}

func TestService_Create_DefaultsStatus(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, pet("Luna", "cat"))
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusAvailable, a.Status)

	bad := pet("Rex", "dog")
	bad.Status = "sold"
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, adoptions.ErrInvalidInput)

	_, err = svc.Create(ctx, adoptions.Insert{Name: "NoType"})
	assert.ErrorIs(t, err, adoptions.ErrInvalidInput)
}

func TestService_List_Filters(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	luna, err := svc.Create(ctx, pet("Luna", "cat"))
	require.NoError(t, err)
	rex, err := svc.Create(ctx, pet("Rex", "dog"))
	require.NoError(t, err)
	tom, err := svc.Create(ctx, pet("Tom", "cat"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, rex.ID, adoptions.Patch{Status: ptr(adoptions.StatusAdopted)})
	require.NoError(t, err)

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []int{tom.ID, rex.ID, luna.ID}, ids(all))

	cats, err := svc.List(ctx, "cat", "")
	require.NoError(t, err)
	assert.Equal(t, []int{tom.ID, luna.ID}, ids(cats))

	// type gana sobre status
	catsAnyStatus, err := svc.List(ctx, "cat", adoptions.StatusAdopted)
	require.NoError(t, err)
	assert.Equal(t, []int{tom.ID, luna.ID}, ids(catsAnyStatus))

	adopted, err := svc.List(ctx, "", adoptions.StatusAdopted)
	require.NoError(t, err)
	assert.Equal(t, []int{rex.ID}, ids(adopted))

	_, err = svc.List(ctx, "", "lost")
	assert.ErrorIs(t, err, adoptions.ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 7, adoptions.Patch{Name: ptr("x")})
	assert.ErrorIs(t, err, adoptions.ErrNotFound)

	a, err := svc.Create(ctx, pet("Luna", "cat"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, a.ID, adoptions.Patch{Status: ptr(adoptions.Status("gone"))})
	assert.ErrorIs(t, err, adoptions.ErrInvalidInput)

	upd, err := svc.Update(ctx, a.ID, adoptions.Patch{Breed: ptr("Siamese")})
	require.NoError(t, err)
	assert.Equal(t, "Siamese", *upd.Breed)
	assert.Equal(t, a.CreatedAt, upd.CreatedAt)
}

func ids(list []adoptions.Adoption) []int {
	out := make([]int, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}
