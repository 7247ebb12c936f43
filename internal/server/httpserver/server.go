package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/sealslot-go/internal/infra/tlsroots"
	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
)

// Default server timeouts.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	certs      *tlsroots.CertReloader
}

// Option configures a Server.
type Option func(*Server)

// WithCertReloader serves HTTPS using certificates from c.
func WithCertReloader(c *tlsroots.CertReloader) Option {
	return func(s *Server) {
		s.certs = c
	}
}

// WithErrorLogger routes net/http internal errors through l.
func WithErrorLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.httpServer.ErrorLog = logger.StdLogger(l)
	}
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ReadTimeout:       DefaultReadTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
		handler: handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.certs != nil {
		s.httpServer.TLSConfig = s.certs.ServerConfig()
	}
	return s
}

// TLS reports whether the server serves HTTPS.
func (s *Server) TLS() bool {
	return s.certs != nil
}

// ListenAndServe starts the server, over TLS when a certificate reloader
// is configured. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	var err error
	if s.certs != nil {
		err = s.httpServer.ServeTLS(ln, "", "")
	} else {
		err = s.httpServer.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
