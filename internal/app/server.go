package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bmispelon/noyel/internal/cache"
	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/bmispelon/noyel/internal/core/ports"
	"github.com/bmispelon/noyel/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server is a stand-in for the search endpoints, backed by fixtures.
type Server struct {
	cfg     config.Config
	cache   *cache.SuggestionCache
	storage ports.Storage
	logger  zerolog.Logger
	router  chi.Router
}

func NewServer(cfg config.Config, storage ports.Storage, logger zerolog.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		cache:   cache.NewSuggestionCache(),
		storage: storage,
		logger:  logger,
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	s.routes()
	return s, nil
}

func (s *Server) load() error {
	for _, endpoint := range []models.Endpoint{models.EndpointGiftee, models.EndpointFriend} {
		dict, err := s.storage.Dictionary(endpoint)
		if err != nil {
			return fmt.Errorf("loading %s fixtures: %w", endpoint, err)
		}
		s.cache.Load(string(endpoint), dict)
		s.logger.Info().
			Str("endpoint", string(endpoint)).
			Int64("entries", s.cache.FTSugLen(string(endpoint))).
			Msg("fixtures loaded")
	}
	return nil
}

// Reload re-reads the fixtures and swaps them into the cache. On failure the
// previously loaded suggestions keep being served.
func (s *Server) Reload() error {
	if err := s.storage.Reload(); err != nil {
		return fmt.Errorf("reloading fixtures: %w", err)
	}
	return s.load()
}

func (s *Server) routes() {
	h := handlers.NewSuggestionHandlers(s.cache, s.cfg.Search.QueryParam, s.cfg.DevServer.MaxResults, s.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get(s.cfg.Search.GifteeSearchPath, h.HandleSearch(models.EndpointGiftee))
	r.Get(s.cfg.Search.FriendSearchPath, h.HandleSearch(models.EndpointFriend))
	s.router = r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("uri", r.URL.RequestURI()).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", address).Msg("development search server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
