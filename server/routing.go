package server

import (
	"net/http"
	"strings"
)

// setupHTTPRoutes configures all HTTP handlers on a dedicated mux. The
// /jobs routes get the full middleware chain; health and root stay outside
// the rate limiter so probes keep working under load.
func (s *Server) setupHTTPRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	api := func(h http.HandlerFunc) http.HandlerFunc {
		return s.corsMiddleware(s.requestLogger(s.rateLimit(h)))
	}

	mux.HandleFunc("/jobs", api(s.jobsAPI.HandleJobs))       // List with filters (GET)
	mux.HandleFunc("/jobs/add", api(s.jobsAPI.HandleCreate)) // Create (POST)
	mux.HandleFunc("/jobs/", api(s.jobsAPI.HandleJobByID))   // Fetch/update one (GET/PUT /jobs/{id})
	mux.HandleFunc("/health", s.corsMiddleware(s.requestLogger(s.handleHealth)))
	mux.HandleFunc("/", s.corsMiddleware(s.requestLogger(s.handleRoot)))

	return mux
}

// corsMiddleware adds CORS headers to HTTP responses using the configured
// allowed origins and answers preflight requests.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// If origin is present and allowed by config, set CORS headers
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// originAllowed reports whether origin matches one of the configured
// allowed origin prefixes. An empty allowlist admits localhost only.
func (s *Server) originAllowed(origin string) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return strings.HasPrefix(origin, "http://localhost") ||
			strings.HasPrefix(origin, "https://localhost")
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if strings.HasPrefix(origin, allowed) {
			return true
		}
	}
	return false
}
