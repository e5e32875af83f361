package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"animal-sos/internal/platform/logger"
	"animal-sos/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader permite inyectar un user id sin sesión (solo si DevHeader está activo).
const DebugUserHeader = "X-Debug-User-ID"

type AuthOptions struct {
	CookieName string
	DevHeader  bool
	Logger     logger.Logger
}

// AuthContext:
// - Si viene la cookie de sesión => resolver.ResolveSession y setea claims.
// - Si DevHeader y viene X-Debug-User-ID => resolver.ResolveUser (modo dev).
// - Si no hay claims, el request sigue igual; los handlers deciden 401/403.
func AuthContext(resolver auth.SessionResolver, opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			if c, err := r.Cookie(opts.CookieName); err == nil && strings.TrimSpace(c.Value) != "" {
				claims, found, err := resolver.ResolveSession(r.Context(), c.Value)
				if err != nil {
					// No cortamos aquí; el handler decide (sin claims => 401).
					log.Warn("session lookup failed", map[string]any{"error": err.Error()})
				}
				if found {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
			}

			if opts.DevHeader {
				if raw := strings.TrimSpace(r.Header.Get(DebugUserHeader)); raw != "" {
					if uid, err := strconv.Atoi(raw); err == nil {
						claims, found, err := resolver.ResolveUser(r.Context(), uid)
						if err != nil {
							log.Warn("debug user lookup failed", map[string]any{"error": err.Error(), "user_id": uid})
						}
						if found {
							next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
							return
						}
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	if !ok || c.UserID <= 0 {
		return auth.Claims{}, false
	}
	return c, true
}

// HasRole indica si las claims tienen alguno de los roles indicados.
func HasRole(c auth.Claims, roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
