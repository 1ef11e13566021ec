// Package web serves the portfolio page and the typewriter event stream.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shreyaw333/portfolio/internal/clock"
	"github.com/shreyaw333/portfolio/internal/config"
	"github.com/shreyaw333/portfolio/internal/content"
	"github.com/shreyaw333/portfolio/internal/typewriter"
)

const shutdownTimeout = 5 * time.Second

// Server hosts the page. Each connected page view gets its own
// typewriter driver through the event stream.
type Server struct {
	cfg        *config.Config
	site       *content.Site
	about      template.HTML
	typewriter typewriter.Config
	clock      clock.Clock
	logger     *slog.Logger
	engine     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock handed to every typewriter driver.
func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds the server. It fails if the content's role list cannot drive
// a typewriter.
func New(cfg *config.Config, site *content.Site, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		site:   site,
		clock:  clock.Real(),
		logger: slog.Default(),
		typewriter: typewriter.Config{
			Phrases:        site.Profile.Roles,
			TypeInterval:   cfg.Typewriter.TypeInterval,
			DeleteInterval: cfg.Typewriter.DeleteInterval,
			Hold:           cfg.Typewriter.Hold,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.typewriter.Validate(); err != nil {
		return nil, fmt.Errorf("typewriter config: %w", err)
	}

	about, err := site.AboutHTML()
	if err != nil {
		return nil, err
	}
	s.about = about

	engine, err := s.buildEngine()
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

func (s *Server) buildEngine() (*gin.Engine, error) {
	gin.SetMode(s.cfg.Server.Mode)

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	if err := r.SetTrustedProxies(s.cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger, s.clock, salt))
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(staticFiles()))
	r.Static("/images", s.cfg.Server.ImagesDir)

	r.GET("/", s.handleIndex)
	r.GET("/sections/:id", s.handleSection)
	r.GET("/typewriter/stream", s.handleTypewriterStream)
	r.GET("/api/site", s.handleSite)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then
// shuts down. Open event streams are ended through their request
// contexts, which derive from ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
