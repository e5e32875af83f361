package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-sos/internal/middleware"
	"animal-sos/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver conoce una sesión y un usuario.
type fakeResolver struct {
	sessions map[string]auth.Claims
	users    map[int]auth.Claims
	err      error
}

func (f fakeResolver) ResolveSession(ctx context.Context, sid string) (auth.Claims, bool, error) {
	if f.err != nil {
		return auth.Claims{}, false, f.err
	}
	c, ok := f.sessions[sid]
	return c, ok, nil
}

func (f fakeResolver) ResolveUser(ctx context.Context, userID int) (auth.Claims, bool, error) {
	if f.err != nil {
		return auth.Claims{}, false, f.err
	}
	c, ok := f.users[userID]
	return c, ok, nil
}

func newResolver() fakeResolver {
	return fakeResolver{
		sessions: map[string]auth.Claims{"sid-1": {UserID: 3, Username: "rita", Role: "ngo"}},
		users:    map[int]auth.Claims{1: {UserID: 1, Username: "admin", Role: "admin"}},
	}
}

// serve pasa el request por AuthContext y devuelve las claims que vio el handler.
func serve(t *testing.T, resolver auth.SessionResolver, opts middleware.AuthOptions, req *http.Request) (auth.Claims, bool) {
	t.Helper()
	var (
		got   auth.Claims
		found bool
	)
	h := middleware.AuthContext(resolver, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = middleware.GetClaims(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return got, found
}

func TestAuthContext_SessionCookie(t *testing.T) {
	opts := middleware.AuthOptions{CookieName: "connect.sid"}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "sid-1"})
	claims, found := serve(t, newResolver(), opts, req)
	require.True(t, found)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, "ngo", claims.Role)

	unknown := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	unknown.AddCookie(&http.Cookie{Name: "connect.sid", Value: "sid-404"})
	_, found = serve(t, newResolver(), opts, unknown)
	assert.False(t, found)

	otherName := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	otherName.AddCookie(&http.Cookie{Name: "session", Value: "sid-1"})
	_, found = serve(t, newResolver(), opts, otherName)
	assert.False(t, found)
}

func TestAuthContext_DebugHeader(t *testing.T) {
	tests := []struct {
		name      string
		devHeader bool
		value     string
		wantUser  int
	}{
		{name: "enabled known user", devHeader: true, value: "1", wantUser: 1},
		{name: "enabled unknown user", devHeader: true, value: "42"},
		{name: "enabled not a number", devHeader: true, value: "abc"},
		{name: "disabled", devHeader: false, value: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			req.Header.Set(middleware.DebugUserHeader, tt.value)

			claims, found := serve(t, newResolver(), middleware.AuthOptions{CookieName: "connect.sid", DevHeader: tt.devHeader}, req)
			if tt.wantUser == 0 {
				assert.False(t, found)
				return
			}
			require.True(t, found)
			assert.Equal(t, tt.wantUser, claims.UserID)
			assert.Equal(t, "admin", claims.Role)
		})
	}
}

func TestAuthContext_CookieWinsOverHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "sid-1"})
	req.Header.Set(middleware.DebugUserHeader, "1")

	claims, found := serve(t, newResolver(), middleware.AuthOptions{CookieName: "connect.sid", DevHeader: true}, req)
	require.True(t, found)
	assert.Equal(t, 3, claims.UserID)
}

func TestAuthContext_ResolverErrorIsAnonymous(t *testing.T) {
	r := newResolver()
	r.err = errors.New("redis down")

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "sid-1"})
	req.Header.Set(middleware.DebugUserHeader, "1")

	_, found := serve(t, r, middleware.AuthOptions{CookieName: "connect.sid", DevHeader: true}, req)
	assert.False(t, found)
}

func TestAuthContext_NilResolver(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "sid-1"})
	_, found := serve(t, nil, middleware.AuthOptions{CookieName: "connect.sid"}, req)
	assert.False(t, found)
}

func TestGetClaims_RejectsZeroUser(t *testing.T) {
	ctx := middleware.WithClaims(context.Background(), auth.Claims{UserID: 0, Role: "admin"})
	_, ok := middleware.GetClaims(ctx)
	assert.False(t, ok)

	_, ok = middleware.GetClaims(context.Background())
	assert.False(t, ok)

	assert.True(t, middleware.HasRole(auth.Claims{Role: "ngo"}, "ngo", "admin"))
	assert.False(t, middleware.HasRole(auth.Claims{Role: "user"}, "ngo", "admin"))
}
