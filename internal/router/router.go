package router

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-movie-streaming/internal/handlers"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/middlewares"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
)

// Auth is implemented by services.AuthService.
type Auth interface {
	handlers.Registerer
	handlers.Loginer
}

// Account is implemented by services.AccountService.
type Account interface {
	handlers.ProfileGetter
	handlers.ProfileUpdater
	handlers.PasswordChanger
	handlers.ResetRequester
	handlers.PasswordResetter
}

// Services groups the application services served over HTTP.
type Services struct {
	Auth      Auth
	Account   Account
	Watchlist handlers.MovieLister
	Favorites handlers.MovieLister
	Movies    handlers.MovieBrowser
}

// Options configures the HTTP surface around the services.
type Options struct {
	Tokener middlewares.Tokener
	Users   middlewares.UserGetter

	// DB wraps list mutations in a request transaction when set.
	DB *sqlx.DB

	// Redis backs the rate limiter of the public auth endpoints. Nil disables it.
	Redis           redis.Scripter
	RateLimitMax    int
	RateLimitWindow time.Duration

	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix

	CORSAllowedOrigins []string
	StaticDir          string
	Debug              bool

	Health  http.Handler
	Metrics http.Handler
}

// New builds the application router.
func New(svc Services, opts Options) http.Handler {
	errs := response.NewErrorWriter(opts.Debug)

	r := chi.NewRouter()
	r.Use(middlewares.Recoverer(errs))
	r.Use(middlewares.RealIP(opts.TrustedProxies))
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	}))

	limiter := middlewares.RateLimit(opts.Redis, opts.RateLimitMax, opts.RateLimitWindow)

	withTx := func(next http.Handler) http.Handler { return next }
	if opts.DB != nil {
		withTx = middlewares.TxMiddleware(opts.DB)
	}

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter)
			r.Post("/register", handlers.NewRegisterHandler(svc.Auth, errs))
			r.Post("/login", handlers.NewLoginHandler(svc.Auth, errs))
			r.Post("/forgot-password", handlers.NewForgotPasswordHandler(svc.Account, errs))
			r.Post("/reset-password", handlers.NewResetPasswordHandler(svc.Account, errs))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(opts.Tokener, opts.Users))

			r.Get("/profile", handlers.NewGetProfileHandler(svc.Account, errs))
			r.Put("/profile", handlers.NewUpdateProfileHandler(svc.Account, errs))
			r.Put("/change-password", handlers.NewChangePasswordHandler(svc.Account, errs))

			r.Get("/watchlist", handlers.NewGetWatchlistHandler(svc.Watchlist, errs))
			r.Get("/favorites", handlers.NewGetFavoritesHandler(svc.Favorites, errs))

			r.Group(func(r chi.Router) {
				r.Use(withTx)
				r.Post("/watchlist", handlers.NewAddToWatchlistHandler(svc.Watchlist, errs))
				r.Delete("/watchlist", handlers.NewRemoveFromWatchlistHandler(svc.Watchlist, errs))
				r.Post("/favorites", handlers.NewAddToFavoritesHandler(svc.Favorites, errs))
				r.Delete("/favorites", handlers.NewRemoveFromFavoritesHandler(svc.Favorites, errs))
			})
		})
	})

	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/trending", handlers.NewTrendingHandler(svc.Movies, errs))
		r.Get("/top-rated", handlers.NewTopRatedHandler(svc.Movies, errs))
		r.Get("/genre/{genre}", handlers.NewGenreHandler(svc.Movies, errs))
		r.Get("/search", handlers.NewSearchHandler(svc.Movies, errs))
		r.Get("/{id}", handlers.NewMovieHandler(svc.Movies, errs))
	})

	if opts.Health != nil {
		r.Method(http.MethodGet, "/healthz", opts.Health)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusNotFound, "Route not found")
	})
	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}
