// Package server hosts the job postings HTTP API: listing with filters,
// create, fetch, and partial update, plus health and CORS plumbing.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ShahwaizZahid/Job-Listing/jobs"
)

const (
	// ShutdownTimeout is how long Stop waits for in-flight requests
	ShutdownTimeout = 10 * time.Second

	// Listener timeouts guard against stuck clients
	readTimeout  = 15 * time.Second
	writeTimeout = 30 * time.Second
)

// Options configures a Server.
type Options struct {
	// Port to bind. When taken, nearby fallback ports are tried.
	Port int

	// AllowedOrigins are origin prefixes accepted by CORS. Empty means
	// localhost only.
	AllowedOrigins []string

	// RateLimitPerMinute caps jobs API requests per minute; zero or less
	// disables limiting.
	RateLimitPerMinute int

	// RateBurst is the spike allowance while limiting is on.
	RateBurst int
}

// Server serves the job postings API over HTTP.
type Server struct {
	db      *bun.DB
	service *jobs.Service
	jobsAPI *JobsHandler
	limiter *rate.Limiter
	opts    Options
	logger  *zap.SugaredLogger

	mu         sync.Mutex
	httpServer *http.Server
	port       int
}

// New creates a Server over an opened, migrated database.
func New(db *bun.DB, log *zap.SugaredLogger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	service := jobs.NewService(jobs.NewStore(db), log)

	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &Server{
		db:      db,
		service: service,
		jobsAPI: NewJobsHandler(service, log),
		limiter: rate.NewLimiter(rateLimitFor(opts.RateLimitPerMinute), burst),
		opts:    opts,
		logger:  log,
	}
}

// Service returns the job service behind the HTTP surface.
func (s *Server) Service() *jobs.Service {
	return s.service
}

// Port returns the bound port. Only meaningful once Start has logged the
// server as listening.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// rateLimitFor converts a per-minute request budget into a rate.Limit.
func rateLimitFor(perMinute int) rate.Limit {
	if perMinute <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(perMinute) / 60.0)
}
