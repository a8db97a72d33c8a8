package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	svcconfig "github.com/dmitrymomot/validkit/pkg/config"
	"github.com/dmitrymomot/validkit/pkg/i18n"
	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/schema"
)

// Server exposes a schema set over HTTP with graceful shutdown.
type Server struct {
	cfg        *config
	schemas    *schema.Set
	translator *i18n.Translator
	handler    http.Handler

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	once     sync.Once
}

// New returns a Server for schemas. A nil translator disables localized
// messages: failures use the schemas' own messages.
func New(schemas *schema.Set, translator *i18n.Translator, opts ...Option) (*Server, error) {
	if schemas == nil {
		return nil, ErrNoSchemas
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	cfg.logger = cfg.logger.With(logger.Component("server"))

	s := &Server{cfg: cfg, schemas: schemas, translator: translator}
	s.handler = s.routes()
	return s, nil
}

// NewFromConfig creates a Server from the service configuration.
// Explicit options are applied after the configuration.
func NewFromConfig(svc svcconfig.Service, schemas *schema.Set, translator *i18n.Translator, opts ...Option) (*Server, error) {
	configOpts := make([]Option, 0, 4+len(opts))
	if svc.Addr != "" {
		configOpts = append(configOpts, WithAddr(svc.Addr))
	}
	if svc.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(svc.ShutdownTimeout))
	}
	if svc.MaxBodyBytes > 0 {
		configOpts = append(configOpts, WithMaxBodySize(svc.MaxBodyBytes))
	}
	configOpts = append(configOpts, WithDefaultLanguage(svc.DefaultLang))
	configOpts = append(configOpts, opts...)
	return New(schemas, translator, configOpts...)
}

// Handler returns the HTTP API.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the address the server listens on once Run has started,
// or the configured address before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.addr
}

// Run listens on the configured address and serves until ctx is done or the
// process receives SIGINT or SIGTERM. A failure to listen is returned
// wrapped in ErrStart.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}

	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
	}
	s.srv = srv
	s.listener = ln
	s.mu.Unlock()

	log := s.cfg.logger
	log.InfoContext(ctx, "server started",
		"addr", ln.Addr().String(),
		"schemas", s.schemas.Names(),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.shutdownAndWait(errCh)
	case sig := <-stop:
		log.Info("signal received", "signal", sig.String())
		runErr = s.shutdownAndWait(errCh)
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		log.Error("server stopped", logger.Error(runErr))
		return errors.Join(ErrStart, runErr)
	}
	log.Info("server stopped")
	return nil
}

func (s *Server) shutdownAndWait(errCh <-chan error) error {
	if err := s.Shutdown(context.Background()); err != nil {
		s.cfg.logger.Error("graceful shutdown failed", logger.Error(err))
	}
	return <-errCh
}

// Shutdown stops the server gracefully. It is safe for repeated calls and
// before Run.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
