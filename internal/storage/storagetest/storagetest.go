// Package storagetest es la batería de contrato que todo motor de storage debe pasar.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/posts"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
	"animal-sos/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory devuelve un storage vacío (sin seed) y exclusivo del subtest.
type Factory func(t *testing.T) storage.Storage

func Run(t *testing.T, newStorage Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStorage(t)) })
	t.Run("Reports", func(t *testing.T) { testReports(t, newStorage(t)) })
	t.Run("ReportsOrdering", func(t *testing.T) { testReportsOrdering(t, newStorage(t)) })
	t.Run("Vets", func(t *testing.T) { testVets(t, newStorage(t)) })
	t.Run("Adoptions", func(t *testing.T) { testAdoptions(t, newStorage(t)) })
	t.Run("Donations", func(t *testing.T) { testDonations(t, newStorage(t)) })
	t.Run("Posts", func(t *testing.T) { testPosts(t, newStorage(t)) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, newStorage(t)) })
	t.Run("SessionStore", func(t *testing.T) {
		assert.NotNil(t, newStorage(t).SessionStore())
	})
}

func ptr[T any](v T) *T { return &v }

func assertTimestamp(t *testing.T, ts time.Time) {
	t.Helper()
	assert.False(t, ts.IsZero())
	assert.Equal(t, time.UTC, ts.Location())
	assert.True(t, ts.Equal(ts.Truncate(time.Millisecond)), "timestamp must have millisecond precision: %s", ts)
}

func ids[T any](items []T, id func(T) int) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func testUsers(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Users()

	a, err := repo.Create(ctx, users.Insert{
		Username: "ana", Password: "hash", Email: "ana@example.com", Name: "Ana",
		Phone: ptr("555-0001"),
	})
	require.NoError(t, err)
	assert.Positive(t, a.ID)
	assert.Equal(t, users.RoleUser, a.Role)
	assertTimestamp(t, a.CreatedAt)

	b, err := repo.Create(ctx, users.Insert{
		Username: "ngo", Password: "hash", Email: "ngo@example.com", Name: "Rescue", Role: users.RoleNGO,
	})
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
	assert.Equal(t, users.RoleNGO, b.Role)
	assert.Nil(t, b.Phone)

	got, found, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a, got)

	got, found, err = repo.GetByUsername(ctx, "ngo")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, b.ID, got.ID)

	got, found, err = repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a.ID, got.ID)

	_, found, err = repo.GetByID(ctx, b.ID+100)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, found)

	// las copias devueltas no comparten memoria con el storage
	*got.Phone = "mutated"
	again, _, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0001", *again.Phone)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{a.ID, b.ID}, ids(list, func(u users.User) int { return u.ID }))

	updated, found, err := repo.Update(ctx, a.ID, users.Patch{Name: ptr("Ana María"), Address: ptr("Calle 1")})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "Calle 1", *updated.Address)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, a.ID, updated.ID)
	assert.True(t, a.CreatedAt.Equal(updated.CreatedAt))

	unchanged, found, err := repo.Update(ctx, a.ID, users.Patch{})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, updated, unchanged)

	_, found, err = repo.Update(ctx, b.ID+100, users.Patch{Name: ptr("x")})
	require.NoError(t, err)
	assert.False(t, found)
}

func newReport(userID int) reports.Insert {
	return reports.Insert{
		UserID:      userID,
		AnimalType:  "dog",
		Description: "injured paw",
		Location:    "Main Street Park",
		Latitude:    ptr("40.7128"),
		Longitude:   ptr("-74.0060"),
	}
}

func testReports(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Reports()

	r, err := repo.Create(ctx, newReport(1))
	require.NoError(t, err)
	assert.Positive(t, r.ID)
	assert.Equal(t, reports.StatusPending, r.Status)
	assert.Equal(t, reports.UrgencyNormal, r.Urgency)
	assert.Nil(t, r.ImageURL)
	assertTimestamp(t, r.CreatedAt)
	assert.True(t, r.CreatedAt.Equal(r.UpdatedAt))

	got, found, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, r, got)

	_, found, err = repo.GetByID(ctx, r.ID+100)
	require.NoError(t, err)
	assert.False(t, found)

	time.Sleep(2 * time.Millisecond)
	status := reports.StatusAssigned
	updated, found, err := repo.Update(ctx, r.ID, reports.Patch{Status: &status})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, reports.StatusAssigned, updated.Status)
	assert.Equal(t, "injured paw", updated.Description)
	assert.True(t, updated.UpdatedAt.After(r.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(r.CreatedAt))

	// el storage no valida transiciones
	back := reports.StatusPending
	_, found, err = repo.Update(ctx, r.ID, reports.Patch{Status: &back})
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(2 * time.Millisecond)
	touched, found, err := repo.Update(ctx, r.ID, reports.Patch{})
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, touched.UpdatedAt.After(updated.UpdatedAt))

	_, found, err = repo.Update(ctx, r.ID+100, reports.Patch{Status: &status})
	require.NoError(t, err)
	assert.False(t, found)
}

func testReportsOrdering(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Reports()

	var created []reports.Report
	for _, uid := range []int{1, 2, 1, 2} {
		r, err := repo.Create(ctx, newReport(uid))
		require.NoError(t, err)
		created = append(created, r)
		time.Sleep(2 * time.Millisecond)
	}
	id := func(r reports.Report) int { return r.ID }

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{created[3].ID, created[2].ID, created[1].ID, created[0].ID}, ids(all, id))

	top, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{created[3].ID, created[2].ID}, ids(top, id))

	mine, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{created[2].ID, created[0].ID}, ids(mine, id))

	closed := reports.StatusClosed
	_, _, err = repo.Update(ctx, created[0].ID, reports.Patch{Status: &closed})
	require.NoError(t, err)
	_, _, err = repo.Update(ctx, created[3].ID, reports.Patch{Status: &closed})
	require.NoError(t, err)

	byStatus, err := repo.ListByStatus(ctx, reports.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, []int{created[3].ID, created[0].ID}, ids(byStatus, id))

	none, err := repo.ListByUser(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testVets(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Vets()

	a, err := repo.Create(ctx, vets.Insert{Name: "Clinic A", Address: "1 Main", Phone: "555", Rating: ptr(4), IsOpen: ptr(true)})
	require.NoError(t, err)
	b, err := repo.Create(ctx, vets.Insert{Name: "Clinic B", Address: "2 Main", Phone: "556"})
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
	assert.Nil(t, b.Rating)
	assert.Nil(t, b.IsOpen)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{a.ID, b.ID}, ids(list, func(v vets.Vet) int { return v.ID }))

	updated, found, err := repo.Update(ctx, a.ID, vets.Patch{IsOpen: ptr(false), Email: ptr("a@clinic.test")})
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, *updated.IsOpen)
	assert.Equal(t, 4, *updated.Rating)
	assert.Equal(t, "a@clinic.test", *updated.Email)

	got, found, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, updated, got)

	_, found, err = repo.GetByID(ctx, b.ID+100)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = repo.Update(ctx, b.ID+100, vets.Patch{Name: ptr("x")})
	require.NoError(t, err)
	assert.False(t, found)
}

func testAdoptions(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Adoptions()
	id := func(a adoptions.Adoption) int { return a.ID }

	dog, err := repo.Create(ctx, adoptions.Insert{Name: "Max", Type: "dog", Age: "3 years", Gender: "male", Description: "friendly"})
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusAvailable, dog.Status)
	assert.Nil(t, dog.Breed)
	assertTimestamp(t, dog.CreatedAt)
	time.Sleep(2 * time.Millisecond)

	cat, err := repo.Create(ctx, adoptions.Insert{Name: "Whiskers", Type: "cat", Age: "2 years", Gender: "female", Description: "cuddly", Status: adoptions.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusPending, cat.Status)
	time.Sleep(2 * time.Millisecond)

	dog2, err := repo.Create(ctx, adoptions.Insert{Name: "Rex", Type: "dog", Age: "1 year", Gender: "male", Description: "energetic", Breed: ptr("Beagle")})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{dog2.ID, cat.ID, dog.ID}, ids(all, id))

	dogs, err := repo.ListByType(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, []int{dog2.ID, dog.ID}, ids(dogs, id))

	available, err := repo.ListByStatus(ctx, adoptions.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, []int{dog2.ID, dog.ID}, ids(available, id))

	adopted := adoptions.StatusAdopted
	updated, found, err := repo.Update(ctx, dog.ID, adoptions.Patch{Status: &adopted})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, adoptions.StatusAdopted, updated.Status)
	assert.Equal(t, "Max", updated.Name)

	_, found, err = repo.GetByID(ctx, dog2.ID+100)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = repo.Update(ctx, dog2.ID+100, adoptions.Patch{Status: &adopted})
	require.NoError(t, err)
	assert.False(t, found)
}

func testDonations(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Donations()

	fresh, err := repo.Create(ctx, donations.Insert{Title: "Food", Description: "kibble", GoalAmount: 1000})
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.RaisedAmount)
	assertTimestamp(t, fresh.CreatedAt)

	d, err := repo.Create(ctx, donations.Insert{Title: "Wildlife", Description: "rescue", GoalAmount: 5000})
	require.NoError(t, err)
	assert.Equal(t, 0, d.RaisedAmount)

	seeded, _, err := repo.Contribute(ctx, d.ID, 2500)
	require.NoError(t, err)
	assert.Equal(t, 2500, seeded.RaisedAmount)

	after, found, err := repo.Contribute(ctx, d.ID, 100)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2600, after.RaisedAmount)

	got, _, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2600, got.RaisedAmount)

	// puede superar la meta
	over, _, err := repo.Contribute(ctx, d.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, 7600, over.RaisedAmount)

	updated, found, err := repo.Update(ctx, d.ID, donations.Patch{GoalAmount: ptr(8000), Title: ptr("Wildlife 2")})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 8000, updated.GoalAmount)
	assert.Equal(t, 7600, updated.RaisedAmount)
	assert.Equal(t, "Wildlife 2", updated.Title)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{fresh.ID, d.ID}, ids(list, func(x donations.Donation) int { return x.ID }))

	_, found, err = repo.Contribute(ctx, d.ID+100, 10)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = repo.Update(ctx, d.ID+100, donations.Patch{Title: ptr("x")})
	require.NoError(t, err)
	assert.False(t, found)
}

func testPosts(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Posts()
	id := func(p posts.Post) int { return p.ID }

	p1, err := repo.Create(ctx, posts.Insert{UserID: 1, Title: "Hello", Content: "first"})
	require.NoError(t, err)
	assertTimestamp(t, p1.CreatedAt)
	time.Sleep(2 * time.Millisecond)
	p2, err := repo.Create(ctx, posts.Insert{UserID: 2, Title: "Tips", Content: "second", ImageURL: ptr("https://img.test/1.jpg")})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	p3, err := repo.Create(ctx, posts.Insert{UserID: 1, Title: "Again", Content: "third"})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{p3.ID, p2.ID, p1.ID}, ids(all, id))

	mine, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{p3.ID, p1.ID}, ids(mine, id))

	updated, found, err := repo.Update(ctx, p2.ID, posts.Patch{Content: ptr("edited")})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, "Tips", updated.Title)
	assert.Equal(t, 2, updated.UserID)

	_, found, err = repo.GetByID(ctx, p3.ID+100)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = repo.Update(ctx, p3.ID+100, posts.Patch{Content: ptr("x")})
	require.NoError(t, err)
	assert.False(t, found)
}

func testConcurrentCreates(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	const n = 20

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Posts().Create(ctx, posts.Insert{UserID: 1, Title: "t", Content: "c"})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[p.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	all, err := s.Posts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}
