package server

import (
	"context"
	"encoding/json"
	"fmt"
	stdtemplate "html/template"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/middleware"
	"github.com/golang-cafe/job-portal/internal/template"

	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	CacheKeyStats = "stats"
)

type Server struct {
	cfg      config.Config
	Conn     *database.DB
	router   *mux.Router
	tmpl     *template.Template
	bigCache *bigcache.BigCache
	logger   zerolog.Logger
	stats    *statsGuard
}

// statsGuard orders stats cache writes against invalidations. A stats
// payload computed before an invalidation must never reach the cache.
type statsGuard struct {
	mu  sync.Mutex
	gen uint64
}

func NewServer(
	cfg config.Config,
	conn *database.DB,
	r *mux.Router,
	t *template.Template,
) Server {
	if cfg.SentryDSN != "" {
		raven.SetDSN(cfg.SentryDSN)
		raven.SetEnvironment(cfg.Env)
	}
	svr := Server{
		cfg:    cfg,
		Conn:   conn,
		router: r,
		tmpl:   t,
		logger: NewLogger(cfg.Env, os.Stdout),
		stats:  &statsGuard{},
	}
	if cfg.StatsCacheTTL > 0 {
		cacheCfg := bigcache.DefaultConfig(cfg.StatsCacheTTL)
		cacheCfg.Shards = 16
		cacheCfg.MaxEntriesInWindow = 64
		cacheCfg.MaxEntrySize = 4096
		cacheCfg.HardMaxCacheSize = 32
		cacheCfg.Verbose = false
		bigCache, err := bigcache.New(context.Background(), cacheCfg)
		if err != nil {
			svr.Log(err, "unable to initialise big cache")
		}
		svr.bigCache = bigCache
	}
	return svr
}

// NewLogger writes human readable lines in dev and JSON lines otherwise.
func NewLogger(env string, w io.Writer) zerolog.Logger {
	if env == "dev" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) MarkdownToHTML(str string) stdtemplate.HTML {
	return s.tmpl.MarkdownToHTML(str)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) Logger() zerolog.Logger {
	return s.logger
}

func (s Server) Render(w http.ResponseWriter, status int, htmlView string, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["SiteName"] = s.cfg.SiteName
	data["SiteHost"] = s.cfg.SiteHost
	if err := s.tmpl.Render(w, status, htmlView, data); err != nil {
		s.Log(err, fmt.Sprintf("unable to render %s", htmlView))
	}
}

func (s Server) XML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.Log(err, "unable to encode json response")
		}
	}
}

// RawJSON writes an already encoded JSON document.
func (s Server) RawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureError(err, map[string]string{"ctx": msg})
	}
	s.logger.Error().Err(err).Msg(msg)
}

// Handler returns the router wrapped in the middleware chain.
func (s Server) Handler() http.Handler {
	return middleware.RecoveryMiddleware(
		s.logger,
		middleware.LoggingMiddleware(
			s.logger,
			middleware.HTTPSMiddleware(
				middleware.HeadersMiddleware(s.router, s.cfg.Env),
				s.cfg.Env,
			),
		),
	)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		s.logger.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "unable to shut down http server")
	}
	return nil
}

// Close releases the cache. The database pool is owned by the caller.
func (s Server) Close() error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Close()
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	if s.bigCache == nil {
		return nil, false
	}
	out, err := s.bigCache.Get(key)
	if err != nil {
		return nil, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Set(key, val)
}

func (s Server) CacheDelete(key string) error {
	if s.bigCache == nil {
		return nil
	}
	err := s.bigCache.Delete(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

// StatsGeneration is taken before reading the counts that CacheStats stores.
func (s Server) StatsGeneration() uint64 {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	return s.stats.gen
}

// CacheStats stores body only when no InvalidateStats ran since gen was taken.
func (s Server) CacheStats(gen uint64, body []byte) (bool, error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	if gen != s.stats.gen {
		return false, nil
	}
	if err := s.CacheSet(CacheKeyStats, body); err != nil {
		return false, err
	}
	return true, nil
}

// InvalidateStats must run after every successful write.
func (s Server) InvalidateStats() error {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	s.stats.gen++
	return s.CacheDelete(CacheKeyStats)
}
