package router

import (
	"net/http"
	"time"

	"animal-sos/internal/auth"
	_ "animal-sos/internal/docs"
	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/posts"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
	"animal-sos/internal/middleware"
	"animal-sos/internal/platform/logger"
	"animal-sos/internal/platform/metrics"
	"animal-sos/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Storage es obligatorio: el motor ya abierto (memory o mongodb).
	Storage storage.Storage

	Logger  logger.Logger    // nil = nop
	Metrics *metrics.Metrics // nil = sin /metrics

	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration

	// DevHeader acepta X-Debug-User-ID como identidad (solo dev/tests).
	DevHeader bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = auth.DefaultCookieName
	}

	// Services por módulo
	usersSvc := users.NewService(opts.Storage.Users())
	reportsSvc := reports.NewService(opts.Storage.Reports())
	vetsSvc := vets.NewService(opts.Storage.Vets())
	adoptionsSvc := adoptions.NewService(opts.Storage.Adoptions())
	donationsSvc := donations.NewService(opts.Storage.Donations())
	postsSvc := posts.NewService(opts.Storage.Posts())
	authSvc := auth.NewService(usersSvc, opts.Storage.SessionStore(), auth.Options{Logger: log})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(middleware.AuthContext(authSvc, middleware.AuthOptions{
		CookieName: opts.CookieName,
		DevHeader:  opts.DevHeader,
		Logger:     log,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		auth.RegisterRoutes(api, authSvc, auth.CookieOptions{
			Name:   opts.CookieName,
			Secure: opts.CookieSecure,
			TTL:    opts.SessionTTL,
		})
		users.RegisterRoutes(api, usersSvc)
		reports.RegisterRoutes(api, reportsSvc)
		vets.RegisterRoutes(api, vetsSvc)
		adoptions.RegisterRoutes(api, adoptionsSvc)
		donations.RegisterRoutes(api, donationsSvc)
		posts.RegisterRoutes(api, postsSvc)
	})

	return r
}
