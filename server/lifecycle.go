package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ShahwaizZahid/Job-Listing/errors"
	"github.com/ShahwaizZahid/Job-Listing/logger"
)

// Start binds a listener and serves until Stop is called. It blocks, so
// callers normally run it in a goroutine and collect the returned error.
func (s *Server) Start() error {
	port, err := findAvailablePort(s.opts.Port)
	if err != nil {
		return errors.Wrap(err, "failed to find available port")
	}
	if port != s.opts.Port {
		s.logger.Infow("Port in use, using alternative",
			"requested_port", s.opts.Port,
			logger.FieldPort, port,
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.setupHTTPRoutes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.port = port
	s.mu.Unlock()

	s.logger.Infow("HTTP server listening",
		logger.FieldPort, port,
		"rate_limit_per_minute", s.opts.RateLimitPerMinute,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout
// for in-flight requests before closing the listener.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.logger.Infow("Initiating server shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}

	s.logger.Infow("Server shutdown complete")
	return nil
}

// SetRateLimit adjusts the request budget at runtime. The config watcher
// calls this so edits apply without a restart.
func (s *Server) SetRateLimit(perMinute int) {
	s.limiter.SetLimit(rateLimitFor(perMinute))
	s.logger.Infow("Rate limit updated", "requests_per_minute", perMinute)
}
