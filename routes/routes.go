package routes

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/football-api/docs"
	"github.com/Dosada05/football-api/handlers"
	"github.com/Dosada05/football-api/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	League    *handlers.LeagueHandler
	Club      *handlers.ClubHandler
	Player    *handlers.PlayerHandler
	Fan       *handlers.FanHandler
	User      *handlers.UserHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

type Options struct {
	Logger             *slog.Logger
	Metrics            *middleware.Metrics
	JWTSecret          []byte
	CORSAllowedOrigins []string
	// LocalStorageDir, when set, is served read-only under /storage/.
	LocalStorageDir string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Route("/liga", func(r chi.Router) {
		r.Get("/", h.League.ListLeagues)
		r.Post("/", h.League.CreateLeague)
		r.Get("/{id}", h.League.GetLeagueByID)
		r.Put("/{id}", h.League.UpdateLeague)
		r.Delete("/{id}", h.League.DeleteLeague)
	})

	router.Route("/klub", func(r chi.Router) {
		r.Get("/", h.Club.ListClubs)
		r.Post("/", h.Club.CreateClub)
		r.Get("/{id}", h.Club.GetClubByID)
		r.Put("/{id}", h.Club.UpdateClub)
		r.Delete("/{id}", h.Club.DeleteClub)
	})

	router.Route("/pemain", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Post("/", h.Player.CreatePlayer)
		r.Get("/{id}", h.Player.GetPlayerByID)
		r.Put("/{id}", h.Player.UpdatePlayer)
		r.Delete("/{id}", h.Player.DeletePlayer)
	})

	router.Route("/fans", func(r chi.Router) {
		r.Get("/", h.Fan.ListFans)
		r.Post("/", h.Fan.CreateFan)
		r.Get("/{id}", h.Fan.GetFanByID)
		r.Put("/{id}", h.Fan.UpdateFan)
		r.Delete("/{id}", h.Fan.DeleteFan)
	})

	if len(opts.JWTSecret) > 0 && h.User != nil {
		router.With(middleware.Authenticate(opts.JWTSecret, logger)).Get("/user", h.User.GetCurrentUser)
	}

	if h.WebSocket != nil {
		router.Get("/ws", h.WebSocket.ServeWs)
	}
	if h.Health != nil {
		router.Get("/healthz", h.Health.Healthz)
	}
	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	if opts.LocalStorageDir != "" {
		fileServer := http.StripPrefix("/storage/", http.FileServer(http.Dir(opts.LocalStorageDir)))
		router.Get("/storage/*", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				handlers.NotFound(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	}

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.SwaggerJSON)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
