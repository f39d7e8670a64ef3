package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	applog "servicios/internal/log"
	"servicios/internal/middleware/ratelimit"
	"servicios/internal/middleware/security"
	"servicios/internal/middleware/trace"
	"servicios/internal/services"
	appweb "servicios/web"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the application services the handlers call.
type Deps struct {
	Clients  *services.ClientService
	Expenses *services.ExpenseService
	Reports  *services.ReportService
	Health   Pinger
	Logger   *applog.Logger
}

type Options struct {
	// UserHeader carries the caller's user id, set by the auth proxy.
	UserHeader         string
	RateLimitPerMinute int
	RequestTimeout     time.Duration
	// Now is the clock used for "current month" and default dates.
	Now func() time.Time
}

type Server struct {
	http.Server
	pages      *renderer
	clients    *services.ClientService
	expenses   *services.ExpenseService
	reports    *services.ReportService
	health     Pinger
	userHeader string
	now        func() time.Time

	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// NewServer wires routes, middleware and templates into a ready-to-run
// http.Server. Template errors are fatal here rather than at first render.
func NewServer(addr string, deps Deps, opts Options) (*Server, error) {
	if opts.UserHeader == "" {
		opts.UserHeader = "X-User-ID"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	pages, err := newRenderer(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}

	s := &Server{
		pages:      pages,
		clients:    deps.Clients,
		expenses:   deps.Expenses,
		reports:    deps.Reports,
		health:     deps.Health,
		userHeader: opts.UserHeader,
		now:        opts.Now,
		limiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
	}
	resolver := security.NewResolver()
	s.tracer = trace.NewMiddleware(logger, resolver.ClientIP, s.headerUser)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(applog.Middleware(logger.WithComponent(applog.ComponentHTTP)))
	r.Use(s.tracer.Handler)
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(security.RejectProbes(resolver))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, err
	}
	r.With(security.StaticAssets(3600)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.RequestTimeout))
		r.Use(s.requireUser)
		r.Use(s.limiter.Middleware(s.headerUser, func(w http.ResponseWriter, _ *http.Request) {
			ErrorResponse(http.StatusTooManyRequests, "Demasiadas solicitudes, intente de nuevo en un minuto").Write(w)
		}))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/services", http.StatusSeeOther)
		})

		r.Get("/services", s.handleServicesPage)
		r.Post("/services", s.handleCreateService)
		r.Get("/services/{id}", s.handleServiceDetail)
		r.Post("/services/{id}", s.handleUpdateService)

		r.Get("/clients", s.handleClients)
		r.Get("/clients/{id}", s.handleClientDetail)
		r.Post("/clients/{id}/delete", s.handleDeleteClient)

		r.Get("/calendar", s.handleCalendar)

		r.Get("/finances", s.handleFinances)
		r.Post("/expenses", s.handleCreateExpense)

		r.Get("/api/summary", s.handleSummaryAPI)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Shutdown stops the limiter janitor and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Metrics exposes the request counters collected by the tracer.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.Metrics()
}

type userKey struct{}

func (s *Server) headerUser(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(s.userHeader))
}

// requireUser rejects requests without the identity header. Every store
// call downstream is scoped by this id.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := s.headerUser(r)
		if userID == "" {
			ErrorResponse(http.StatusUnauthorized, msgNoUser).Write(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, userID)))
	})
}

func userFrom(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			slog.WarnContext(r.Context(), "Readiness check failed", "error", err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
