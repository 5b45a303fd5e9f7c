package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ajanick3/readinglist/pkg/auth"
	"github.com/ajanick3/readinglist/pkg/httputil"
	"github.com/ajanick3/readinglist/pkg/middleware"
	"github.com/ajanick3/readinglist/pkg/observability"
	"github.com/ajanick3/readinglist/pkg/store"
)

// Options configures the API server
type Options struct {
	TokenCodec *auth.TokenCodec
	Users      store.UserStore
	Books      store.BookStore
	ListItems  store.ListItemStore

	Logger  *observability.Logger
	Metrics *observability.Metrics // nil disables metrics collection

	AllowedOrigins []string
	TracingEnabled bool
}

// Server is the reading-list API server
type Server struct {
	router  *mux.Router
	logger  *observability.Logger
	metrics *observability.Metrics
	opts    Options
}

// NewServer creates a new API server with all routes configured
func NewServer(opts Options) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		logger:  opts.Logger,
		metrics: opts.Metrics,
		opts:    opts,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	required := middleware.NewAuthMiddleware(s.opts.TokenCodec, s.opts.Users, false)
	optional := middleware.NewAuthMiddleware(s.opts.TokenCodec, s.opts.Users, true)
	guard := middleware.NewListItemGuard(s.opts.ListItems)

	// Attached on the router itself so mux.CurrentRoute can resolve the
	// matched pattern for the path label.
	if s.metrics != nil {
		s.router.Use(s.metrics.HTTPMiddleware(routeTemplate))
	}

	api := s.router.PathPrefix("/api").Subrouter()

	authHandlers := NewAuthHandlers(s.opts.TokenCodec, s.opts.Users, s.logger, s.metrics)
	authHandlers.RegisterRoutes(api, required)

	bookHandlers := NewBookHandlers(s.opts.Books, s.logger)
	bookHandlers.RegisterRoutes(api, optional)

	listItemHandlers := NewListItemHandlers(s.opts.ListItems, s.opts.Books, s.logger)
	listItemHandlers.RegisterRoutes(api, required, guard)
}

// Router returns the bare mux router, mainly for tests
func (s *Server) Router() *mux.Router {
	return s.router
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	handler := httputil.Chain(
		httputil.RecoveryMiddleware,
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware,
		httputil.CORSMiddleware(s.opts.AllowedOrigins),
	)(s.router)
	if s.opts.TracingEnabled {
		handler = otelhttp.NewHandler(handler, "readinglist-api")
	}
	return handler
}

// routeTemplate resolves the matched route pattern so metric labels stay
// bounded regardless of path variable values
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}
