package httpapi

import (
	"context"
	"net/http"
	"time"

	"mclink/internal/application"
	"mclink/pkg/config"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth"
)

// Server exposes the linking engine to the Minecraft server plugin:
// join events come in, verification codes and link status go out.
type Server struct {
	services *application.Service
	logger   application.Logger

	tokenAuth         *jwtauth.JWTAuth
	codeExpiryMinutes int
	rateLimit         int
	port              string

	httpServer *http.Server
}

func NewServer(cfg *config.Config, services *application.Service, logger application.Logger) *Server {
	return &Server{
		services:          services,
		logger:            logger,
		tokenAuth:         jwtauth.New("HS256", []byte(cfg.JWTSecretKey), nil),
		codeExpiryMinutes: cfg.CodeExpiryMinutes,
		rateLimit:         cfg.RateLimit,
		port:              cfg.HTTPPort,
	}
}

func (s *Server) Init() error {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Join storms from the game server must not overwhelm the store.
	r.Use(httprate.LimitByIP(s.rateLimit, 1*time.Minute))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/sessions/join", s.handleJoin)
			r.Get("/links/{uuid}", s.handleGetLink)
			r.Delete("/links/{uuid}", s.handleUnlink)
		})
	})

	s.httpServer = &http.Server{
		Addr:         ":" + s.port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("HTTP API listening on :%s", s.port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("http server shutdown: %v", err)
	}
}
