package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shipquote/internal/engine"
	"shipquote/internal/metrics"
	"shipquote/internal/store"
)

// Server wires the quote engine and its HTTP surface.
type Server struct {
	Engine       *engine.Engine
	Store        store.ZoneStore
	Log          *zap.Logger
	DefaultStore string

	limiter  *rate.Limiter
	validate *validator.Validate
}

type Options struct {
	DefaultStore string
	RateRPS      float64
	RateBurst    int
}

func NewServer(eng *engine.Engine, st store.ZoneStore, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultStore == "" {
		opts.DefaultStore = "store_demo"
	}
	if opts.RateRPS <= 0 {
		opts.RateRPS = 50
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 100
	}
	return &Server{
		Engine:       eng,
		Store:        st,
		Log:          log,
		DefaultStore: opts.DefaultStore,
		limiter:      rate.NewLimiter(rate.Limit(opts.RateRPS), opts.RateBurst),
		validate:     validator.New(),
	}
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() *chi.Mux {
	metrics.RegisterDefault()
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.observe)
	r.Use(s.rateLimit)

	r.Route("/v1/shipping", func(r chi.Router) {
		r.Post("/quotes", s.QuotesHandler)
		r.Post("/availability", s.AvailabilityHandler)
		r.Post("/methods/{methodID}/quote", s.MethodQuoteHandler)
		r.Post("/explain", s.ExplainHandler)
		r.Get("/tester/ws", s.TesterWSHandler)
	})

	r.Get("/healthz", s.HealthHandler)
	r.Get("/readyz", s.ReadyHandler)
	r.Get("/debugz", s.DebugJSON)
	r.Get("/openapi.yaml", s.OpenAPIHandler)
	r.Get("/docs", s.DocsHandler)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	return r
}

// storeScope resolves the store identifier from the request. Tenant
// resolution proper lives upstream; here the header is trusted with a demo
// default for local use.
func (s *Server) storeScope(r *http.Request) string {
	if v := r.Header.Get("X-Store-Id"); v != "" {
		return v
	}
	return s.DefaultStore
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Store.LoadZones(r.Context(), s.DefaultStore); err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Not ready", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
