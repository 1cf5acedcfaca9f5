// Package server wires the Dualcaster Deals web UI together: router,
// middleware stack, route registration and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/auth"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/config"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/handlers"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/session"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/templates"
	"github.com/dualcaster-deals/dualcaster/app/web"
)

const (
	// ServerShutdownTimeout is the timeout for graceful server shutdown
	ServerShutdownTimeout = 10 * time.Second

	requestTimeout = 60 * time.Second
)

type Server struct {
	router      *chi.Mux
	config      *config.Config
	logger      *slog.Logger
	authService *auth.AuthService
}

// New builds a fully-wired UI server: templates parsed, API client bound to
// the configured backend, middleware and routes registered.
func New(cfg *config.Config, serverLogger *slog.Logger) (*Server, error) {
	s := &Server{
		router:      chi.NewRouter(),
		config:      cfg,
		logger:      serverLogger,
		authService: auth.NewAuthService(cfg.Environment),
	}

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// the base client carries an empty token store; handlers bind a
	// request-scoped store holding the cookie token before each call
	apiClient := client.New(cfg.APIBaseURL, session.NewMemoryStore(""))

	handlerService := handlers.NewHandlerService(s.authService, apiClient, tmpl, cfg.Environment)

	s.setupMiddleware()
	s.registerRoutes(handlerService)

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(SecurityHeaders(s.config.Environment))
	s.router.Use(chimiddleware.Timeout(requestTimeout))
}

func (s *Server) registerRoutes(handlerService *handlers.HandlerService) {
	// Static assets (no auth required)
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	// redirects to dashboard if authenticated, login if not
	s.router.Get("/", handlerService.HandleHome)

	// Public routes. Login/register POSTs are rate limited to slow down
	// credential stuffing.
	s.router.Group(func(r chi.Router) {
		r.Use(RequestSizeLimit(dualcaster.DefaultFormRequestSize))

		r.Get("/login", handlerService.HandleLogin)
		r.Get("/register", handlerService.HandleRegister)
		r.Get("/access-denied", handlerService.HandleAccessDenied)

		r.Group(func(r chi.Router) {
			r.Use(RateLimit(s.config.LoginRateLimit, s.config.LoginRateBurst))
			r.Post("/login", handlerService.HandleLoginPost)
			r.Post("/register", handlerService.HandleRegisterPost)
		})
	})

	// Card search, card pages and the seller directory are browsable
	// without an account
	s.router.Get("/search", handlerService.HandleSearchPage)
	s.router.Get("/cards/{id}", handlerService.HandleCardDetail)
	s.router.Get("/directory", handlerService.HandleDirectoryPage)

	// Protected pages
	s.router.Group(func(r chi.Router) {
		r.Use(s.authService.RequireAuth)

		r.Post("/logout", handlerService.HandleLogout)
		r.Get("/dashboard", handlerService.HandleDashboard)
		r.Get("/inventory", handlerService.HandleInventoryPage)
		r.Get("/quotes", handlerService.HandleQuotesPage)
		r.Get("/settings", handlerService.HandleSettingsPage)

		// Moderator-only pages
		r.Group(func(r chi.Router) {
			r.Use(s.authService.RequireModerator)

			r.Get("/moderation", handlerService.HandleModerationPage)
			r.Get("/appeals", handlerService.HandleAppealsPage)
			r.Get("/disputes", handlerService.HandleDisputesPage)
			r.Get("/disputes/{id}", handlerService.HandleDisputeDetail)
		})
	})

	// UI API endpoints (HTMX fragments)
	s.router.Route("/ui-api", func(r chi.Router) {
		r.Use(s.uiAPICORS())

		// public fragments backing the card search and seller directory
		r.Group(func(r chi.Router) {
			r.Use(RequestSizeLimit(dualcaster.DefaultFormRequestSize))

			r.Get("/search-cards", handlerService.HandleSearchCards)
			r.Get("/cards/{id}/price-history", handlerService.HandlePriceHistory)
			r.Get("/sellers", handlerService.HandleSellerList)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authService.RequireAuth)
			r.Use(RequestSizeLimit(dualcaster.DefaultFormRequestSize))

			r.Get("/stats", handlerService.HandleStats)
			r.Post("/refresh-stats", handlerService.HandleRefreshStats)
			r.Get("/recommendations", handlerService.HandleRecommendations)
			r.Post("/refresh-recommendations", handlerService.HandleRefreshRecommendations)
			r.Get("/movers", handlerService.HandleMovers)

			r.Get("/inventory", handlerService.HandleInventoryRows)
			r.Post("/inventory", handlerService.HandleAddInventoryItem)
			r.Put("/inventory/{id}", handlerService.HandleUpdateInventoryItem)
			r.Delete("/inventory/{id}", handlerService.HandleDeleteInventoryItem)

			r.Get("/quotes", handlerService.HandleQuoteRows)
			r.Post("/quotes/{id}/accept", handlerService.HandleAcceptQuote)
			r.Post("/quotes/{id}/decline", handlerService.HandleDeclineQuote)
			r.Get("/sellers/{id}/quote-form", handlerService.HandleQuoteForm)
			r.Post("/quote-requests", handlerService.HandleCreateQuoteRequest)

			r.Put("/settings", handlerService.HandleUpdateSettings)
			r.Post("/change-password", handlerService.HandleChangePassword)

			// Moderator-only fragments
			r.Group(func(r chi.Router) {
				r.Use(s.authService.RequireModerator)

				r.Get("/moderation-queue", handlerService.HandleModerationQueue)
				r.Post("/moderation-resolve", handlerService.HandleResolveModerationItem)
				r.Get("/appeals", handlerService.HandleAppealList)
				r.Get("/appeals/{id}", handlerService.HandleAppealDetail)
				r.Post("/appeal-resolve", handlerService.HandleResolveAppeal)

				r.Get("/disputes", handlerService.HandleDisputeList)
				r.Post("/disputes/{id}/assign", handlerService.HandleAssignDispute)
				r.Post("/disputes/{id}/request-evidence", handlerService.HandleRequestDisputeEvidence)
				r.Post("/disputes/{id}/resolve", handlerService.HandleResolveDispute)
			})
		})

		// bulk import carries a file upload - larger limit
		r.Group(func(r chi.Router) {
			r.Use(s.authService.RequireAuth)
			r.Use(RequestSizeLimit(dualcaster.MaxImportRequestSize))

			r.Post("/inventory-import", handlerService.HandleImportInventory)
		})
	})
}

// uiAPICORS builds the /ui-api CORS middleware from the configured origins.
// A misconfigured origin list is a startup-time mistake, so it panics rather
// than serving without a policy.
func (s *Server) uiAPICORS() func(http.Handler) http.Handler {
	corsMiddleware, err := NewUIAPICORS(s.config.Origins())
	if err != nil {
		panic(fmt.Sprintf("invalid CORS configuration: %v", err))
	}
	return CORS(corsMiddleware)
}

// Router exposes the configured router (used by tests)
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("Dualcaster UI listening", slog.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
