// Package server wires the console: cookies, stores, gateway client,
// services, handlers and the chi router in front of them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/config"
	"tickets-go-admin/internal/drafts"
	"tickets-go-admin/internal/gateway"
	"tickets-go-admin/internal/handlers"
	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/navigation"
	"tickets-go-admin/internal/services"
	"tickets-go-admin/web"
)

const (
	loginAttempts = 5
	loginWindow   = 15 * time.Minute
	sweepInterval = time.Minute
)

// Server is the wired console
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	router  chi.Router
	drafts  drafts.Store
	limiter *middleware.LoginRateLimiter
	closers []func() error
}

// New builds the console. ctx bounds background work such as the
// in-memory draft sweeper.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, logger: logger}

	clk := clock.NewSystem(cfg.Location())

	client, err := gateway.NewClient(gateway.ClientOptions{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	if err := s.openDrafts(ctx, clk); err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	navCookies := navigation.NewCookies(store, navigation.DefaultMenu(), logger.Named("navigation"))
	session := auth.NewSession(auth.NewCredentialStore(store),
		navCookies,
		auth.ResetterFunc(func(w http.ResponseWriter, r *http.Request, sid string) error {
			if sid == "" {
				return nil
			}
			return s.drafts.DeleteOwner(r.Context(), sid)
		}),
	)

	maxBody := 2*cfg.Upload.MaxBytes + 1<<20
	images := services.NewImagePreparer(services.ImageOptions{
		MaxBytes:  cfg.Upload.MaxBytes,
		MaxWidth:  cfg.Upload.MaxWidth,
		MaxHeight: cfg.Upload.MaxHeight,
	})

	authService := services.NewAuthService(client, clk, cfg.Credential.TTL, logger.Named("auth"))
	eventService := services.NewEventService(client, clk)
	editor := services.NewEventEditor(client, s.drafts, images, clk, logger.Named("editor"))
	tagService := services.NewTagService(client, clk)
	memberService := services.NewMemberService(client)

	flashes := handlers.NewFlashes(store, logger)
	authHandler := handlers.NewAuthHandler(authService, session, navCookies, flashes, logger)
	homeHandler := handlers.NewHomeHandler(memberService, flashes, logger)
	navHandler := handlers.NewNavHandler(navCookies, logger)
	eventHandler := handlers.NewEventHandler(eventService, editor, tagService, flashes, logger, maxBody)
	tagHandler := handlers.NewTagHandler(tagService, flashes, logger)

	authMiddleware := middleware.NewAuthMiddleware(session, clk, logger)
	csrf := middleware.NewCSRFMiddleware(store, logger)
	s.limiter = middleware.NewLoginRateLimiter(loginAttempts, loginWindow)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LimitBody(maxBody))

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", homeHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.LoadCredential)
		r.Use(csrf.EnsureCSRFToken)
		r.Use(csrf.CSRFProtection)
		r.Use(middleware.Navigation(navCookies, logger))
		r.Use(middleware.RouteGate(middleware.PublicPaths))

		r.Get("/home", homeHandler.Landing)
		r.Get("/brand", authHandler.Brand)
		r.Get("/login", authHandler.LoginPage)
		r.With(middleware.LoginRateLimit(s.limiter)).Post("/login", authHandler.Login)

		r.Get("/", homeHandler.Welcome)
		r.Post("/logout", authHandler.Logout)
		r.Get("/members", homeHandler.Members)

		r.Route("/nav", func(r chi.Router) {
			r.Get("/select", navHandler.Select)
			r.Get("/open", navHandler.Open)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Get("/new", eventHandler.New)
			r.Get("/{id}/edit", eventHandler.Edit)
			r.Get("/{id}/delete", eventHandler.DeleteConfirm)
			r.Post("/{id}/delete", eventHandler.Delete)
			r.Post("/drafts/{draft}/submit", eventHandler.Submit)
			r.Post("/drafts/{draft}/cancel", eventHandler.Cancel)
			r.Post("/drafts/{draft}/{action}", eventHandler.Action)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.List)
			r.Get("/new", tagHandler.New)
			r.Post("/new", tagHandler.Create)
			r.Get("/{id}/edit", tagHandler.Edit)
			r.Post("/{id}/edit", tagHandler.Update)
			r.Get("/{id}/delete", tagHandler.DeleteConfirm)
			r.Post("/{id}/delete", tagHandler.Delete)
		})
	})

	s.router = r
	return s, nil
}

// openDrafts picks the draft store: Redis when configured, process memory
// otherwise
func (s *Server) openDrafts(ctx context.Context, clk clock.Clock) error {
	if s.cfg.Drafts.RedisURL != "" {
		store, err := drafts.NewRedisStoreFromURL(ctx, s.cfg.Drafts.RedisURL, s.cfg.Drafts.TTL)
		if err != nil {
			return fmt.Errorf("failed to open draft store: %w", err)
		}
		s.drafts = store
		s.closers = append(s.closers, store.Close)
		s.logger.Info("keeping event drafts in redis")
		return nil
	}

	store := drafts.NewMemoryStore(clk, s.cfg.Drafts.TTL)
	go store.RunSweeper(ctx, sweepInterval)
	s.drafts = store
	s.logger.Info("keeping event drafts in memory")
	return nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the stores and background workers
func (s *Server) Close() error {
	s.limiter.Stop()
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
