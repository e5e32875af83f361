package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/config"
	"animal-sos/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemoryDefaults(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Session.CheckPeriod = 0

	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	assert.IsType(t, &memory.Storage{}, a.Storage)
	assert.IsType(t, &session.MemoryStore{}, a.Sessions)
	assert.Same(t, a.Sessions, a.Storage.SessionStore())

	vets, err := a.Storage.Vets().List(ctx)
	require.NoError(t, err)
	assert.Len(t, vets, 2, "memory engine seeds on construction")

	seeded, err := a.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenStorage_AdminPassword(t *testing.T) {
	ctx := context.Background()
	st, err := OpenStorage(ctx, config.StorageConfig{Driver: "memory", AdminPassword: "new-admin"}, session.NewMemoryStore(session.MemoryOptions{}), nil)
	require.NoError(t, err)

	admin, found, err := st.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, memory.DefaultAdminPasswordHash, admin.Password)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), config.StorageConfig{Driver: "sqlite"}, nil, nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestOpenStorage_MongoUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := OpenStorage(ctx, config.StorageConfig{
		Driver:        "mongodb",
		MongoURI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200",
		MongoDatabase: "animal_sos_test",
	}, session.NewMemoryStore(session.MemoryOptions{}), nil)
	assert.Error(t, err)
}

func TestOpenSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := OpenSessions(ctx, config.SessionConfig{Driver: "redis", RedisAddr: mr.Addr(), TTL: time.Minute}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, "abc", []byte(`{"passport":{"user":1}}`)))
		assert.True(t, mr.Exists("sess:abc"))
		assert.Equal(t, time.Minute, mr.TTL("sess:abc"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		_, err := OpenSessions(ctx, config.SessionConfig{Driver: "redis", RedisAddr: "127.0.0.1:1", TTL: time.Minute}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenSessions(ctx, config.SessionConfig{Driver: "file"}, nil)
		assert.ErrorContains(t, err, "unknown session driver")
	})
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "animal_sos", metricsNamespace("animal-sos"))
	assert.Equal(t, "my_app_2", metricsNamespace(" My App 2 "))
	assert.Equal(t, "app", metricsNamespace(""))
}
