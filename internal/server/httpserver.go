package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ytget/playlist-packager/internal/config"
)

// DrainTimeout is how long requests get to unwind after their context is
// cancelled at the end of a shutdown
const DrainTimeout = 10 * time.Second

// HTTPServer wraps http.Server to provide graceful startup and shutdown helpers.
// Every request context derives from a base context that Shutdown cancels, so
// running jobs stop and clean up their working areas before the process exits.
type HTTPServer struct {
	server   *http.Server
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// NewHTTPServer creates a configured HTTP server instance.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *HTTPServer {
	baseCtx, cancel := context.WithCancel(context.Background())
	s := &HTTPServer{cancel: cancel}

	s.server = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.track(handler),
		ReadTimeout:       cfg.HTTPReadTimeout(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout(),
		IdleTimeout:       cfg.HTTPIdleTimeout(),
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	return s
}

func (s *HTTPServer) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.inflight.Add(1)
		defer s.inflight.Done()
		next.ServeHTTP(w, r)
	})
}

// Addr returns the configured listen address
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// Start listens on the configured address and serves in the current
// goroutine. It returns nil once Shutdown has been called.
func (s *HTTPServer) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. It returns nil once Shutdown has been called.
func (s *HTTPServer) Serve(ln net.Listener) error {
	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until
// ctx is done. Requests still running then have their context cancelled and
// get DrainTimeout to return.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.cancel()
	if err != nil {
		s.drain(DrainTimeout)
	}
	return err
}

func (s *HTTPServer) drain(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
