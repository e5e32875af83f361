package auth

import (
	"context"
	"fmt"
	"testing"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *Service
	users    *users.Service
	sessions *session.MemoryStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	sessions := session.NewMemoryStore(session.MemoryOptions{})
	t.Cleanup(func() { _ = sessions.Close() })

	st := memory.New(memory.Options{Sessions: sessions, SkipSeed: true})
	us := users.NewService(st.Users())

	n := 0
	svc := NewService(us, sessions, Options{NewSessionID: func() string {
		n++
		return fmt.Sprintf("sid-%d", n)
	}})
	return fixture{svc: svc, users: us, sessions: sessions}
}

func validRegister() RegisterInput {
	return RegisterInput{Username: "ana", Password: "secret1", Email: "ana@example.com", Name: "Ana"}
}

func TestRegister_OpensSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, sid, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
	assert.Equal(t, users.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.Password)

	raw, found, err := f.sessions.Get(ctx, sid)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, fmt.Sprintf(`{"passport":{"user":%d}}`, u.ID), string(raw))

	claims, found, err := f.svc.ResolveSession(ctx, sid)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("short password", func(t *testing.T) {
		f := newFixture(t)
		in := validRegister()
		in.Password = "12345"
		_, _, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("admin role", func(t *testing.T) {
		f := newFixture(t)
		in := validRegister()
		in.Role = users.RoleAdmin
		_, _, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("ngo role allowed", func(t *testing.T) {
		f := newFixture(t)
		in := validRegister()
		in.Role = users.RoleNGO
		u, _, err := f.svc.Register(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, users.RoleNGO, u.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Register(ctx, validRegister())
		require.NoError(t, err)

		in := validRegister()
		in.Email = "other@example.com"
		_, _, err = f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, users.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, _, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)

	u, sid, err := f.svc.Login(ctx, " ana ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.Equal(t, "sid-2", sid)

	_, _, err = f.svc.Login(ctx, "ana", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_CorruptStoredHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, users.CreateInput{
		Username: "legacy", PasswordHash: "not-a-hash", Email: "l@example.com", Name: "L",
	})
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, "legacy", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SeededAdminHashIsReadable(t *testing.T) {
	ok, err := ComparePassword("definitely-not-it", memory.DefaultAdminPasswordHash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_DestroysSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, sid, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, sid))
	_, found, err := f.svc.ResolveSession(ctx, sid)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, f.svc.Logout(ctx, ""))
}

func TestResolveSession_UnknownOrAnonymous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, found, err := f.svc.ResolveSession(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, f.sessions.Set(ctx, "anon", []byte(`{"cookie":{}}`)))
	_, found, err = f.svc.ResolveSession(ctx, "anon")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, f.sessions.Set(ctx, "ghost", []byte(`{"passport":{"user":99}}`)))
	_, found, err = f.svc.ResolveSession(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, found)
}
