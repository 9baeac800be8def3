package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	startHooks      []func()
	closers         []closer
}

// Server wraps http.Server with signal-aware graceful shutdown. Resources
// registered with WithCloser are released after the listener stops, in
// reverse registration order.
type Server struct {
	cfg  *config
	once sync.Once

	mu  sync.Mutex
	srv *http.Server
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Run serves handler and blocks until ctx is cancelled, SIGINT or SIGTERM
// arrives, Shutdown is called, or the listener fails. Listener failures are
// wrapped with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
	}
	s.srv = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.cfg.logger.InfoContext(ctx, "http server starting", slog.String("addr", s.cfg.addr))
	for _, h := range s.cfg.startHooks {
		h()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		s.cfg.logger.Info("context cancelled, shutting down")
	case sig := <-stop:
		s.cfg.logger.Info("signal received, shutting down", slog.String("signal", sig.String()))
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		s.close(context.Background())
		return errors.Join(ErrStart, runErr)
	}

	shutdownErr := s.Shutdown(context.Background())
	if runErr == nil {
		runErr = <-errCh
	}
	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return shutdownErr
}

// Shutdown stops the listener gracefully and releases registered resources.
// Repeated calls are no-ops. A failed graceful stop is wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil && !errors.Is(shutdownErr, http.ErrServerClosed) {
			err = errors.Join(ErrShutdown, shutdownErr)
		}
		s.close(ctx)
		s.cfg.logger.Info("http server stopped")
	})
	return err
}

func (s *Server) close(ctx context.Context) {
	for i := len(s.cfg.closers) - 1; i >= 0; i-- {
		c := s.cfg.closers[i]
		if err := c.fn(ctx); err != nil {
			s.cfg.logger.ErrorContext(ctx, "release resource", slog.String("resource", c.name), slog.Any("error", err))
		}
	}
	s.cfg.closers = nil
}
