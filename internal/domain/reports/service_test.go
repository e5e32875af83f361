package reports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo guarda reportes en un map; suficiente para probar reglas del service.
type fakeRepo struct {
	next int
	byID map[int]Report
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{next: 1, byID: map[int]Report{}}
}

func (f *fakeRepo) Create(ctx context.Context, in Insert) (Report, error) {
	now := time.Now().UTC()
	r := Report{
		ID:          f.next,
		UserID:      in.UserID,
		AnimalType:  in.AnimalType,
		Description: in.Description,
		Location:    in.Location,
		Status:      in.Status,
		Urgency:     in.Urgency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.next++
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (Report, bool, error) {
	r, ok := f.byID[id]
	return r, ok, nil
}

func (f *fakeRepo) sorted() []Report {
	out := make([]Report, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeRepo) List(ctx context.Context, limit int) ([]Report, error) {
	out := f.sorted()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status Status) ([]Report, error) {
	var out []Report
	for _, r := range f.sorted() {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID int) ([]Report, error) {
	var out []Report
	for _, r := range f.sorted() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int, p Patch) (Report, bool, error) {
	r, ok := f.byID[id]
	if !ok {
		return Report{}, false, nil
	}
	p.Apply(&r)
	r.UpdatedAt = time.Now().UTC()
	f.byID[id] = r
	return r, true, nil
}

func validInput() CreateInput {
	return CreateInput{AnimalType: "dog", Description: "injured paw", Location: "Main Street Park"}
}

func TestService_Create_Defaults(t *testing.T) {
	svc := NewService(newFakeRepo())

	r, err := svc.Create(context.Background(), 7, validInput())
	require.NoError(t, err)
	assert.Equal(t, 7, r.UserID)
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, UrgencyNormal, r.Urgency)
}

func TestService_Create_InvalidInput(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := map[string]func(in *CreateInput){
		"missing animal type": func(in *CreateInput) { in.AnimalType = " " },
		"missing description": func(in *CreateInput) { in.Description = "" },
		"missing location":    func(in *CreateInput) { in.Location = "" },
		"bad urgency":         func(in *CreateInput) { in.Urgency = "critical" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(context.Background(), 1, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Create(context.Background(), 0, validInput())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusClosed, true},
		{StatusPending, StatusRescued, false},
		{StatusAssigned, StatusInProgress, true},
		{StatusAssigned, StatusPending, false},
		{StatusInProgress, StatusRescued, true},
		{StatusInProgress, StatusAssigned, false},
		{StatusRescued, StatusClosed, true},
		{StatusRescued, StatusInProgress, false},
		{StatusClosed, StatusPending, false},
		{StatusClosed, StatusClosed, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestService_UpdateStatus_Flow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	r, err = svc.UpdateStatus(ctx, r.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, r.Status)

	_, err = svc.UpdateStatus(ctx, r.ID, StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	r, err = svc.UpdateStatus(ctx, r.ID, StatusRescued)
	require.NoError(t, err)
	assert.Equal(t, StatusRescued, r.Status)

	_, err = svc.UpdateStatus(ctx, r.ID, "lost")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	desc := "x"

	_, err := svc.Update(context.Background(), 99, Patch{Description: &desc})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), 99, StatusClosed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List_Filters(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, uid := range []int{1, 2, 1} {
		_, err := svc.Create(ctx, uid, validInput())
		require.NoError(t, err)
	}
	_, err := svc.UpdateStatus(ctx, 2, StatusAssigned)
	require.NoError(t, err)

	byUser, err := svc.List(ctx, ListFilter{UserID: 1})
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, []int{3, 1}, []int{byUser[0].ID, byUser[1].ID})

	assigned, err := svc.List(ctx, ListFilter{Status: StatusAssigned})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, 2, assigned[0].ID)

	limited, err := svc.List(ctx, ListFilter{UserID: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = svc.List(ctx, ListFilter{Status: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
