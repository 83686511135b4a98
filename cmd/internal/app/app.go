// Package app wires the parley server runtime: config, logging, stores,
// and the HTTP surface.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parley/cmd/identity"
	authapi "parley/cmd/internal/auth/api"
	"parley/cmd/internal/chat"
	chatapi "parley/cmd/internal/chat/api"
	"parley/cmd/security/password"
	"parley/cmd/security/token"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App owns the wired runtime: the HTTP handlers and, when a database is
// configured, the connection pool.
type App struct {
	cfg Config
	log Logger

	dbPool    *pgxpool.Pool
	dbEnabled bool

	auth          *authapi.Handler
	conversations *chatapi.Handler
}

// New constructs a fully wired App instance from config and logger.
//
// When cfg.DatabaseURL is empty both stores fall back to their
// in-memory implementations; that mode is for development and tests
// only, nothing survives a restart.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	tokenCfg, err := token.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewManager(tokenCfg)
	if err != nil {
		return nil, err
	}

	passwords, err := password.FromEnv()
	if err != nil {
		return nil, err
	}

	accounts, convos, dbPool, dbEnabled, err := newStores(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	authSvc := identity.NewService(log, accounts, passwords, tokens)

	return &App{
		cfg:           cfg,
		log:           log,
		dbPool:        dbPool,
		dbEnabled:     dbEnabled,
		auth:          authapi.NewHandler(log, authSvc, tokens),
		conversations: chatapi.NewHandler(log, convos, tokens),
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.auth, a.conversations)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(mux, a.log),
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
		IdleTimeout:       a.cfg.IdleTimeout,
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

// newStores decides between Postgres-backed persistence and the
// in-memory dev stores.
func newStores(ctx context.Context, cfg Config, log Logger) (identity.Store, chat.Store, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return identity.NewInMemoryStore(), chat.NewInMemoryStore(), nil, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, nil, false, err
	}

	accounts, err := identity.NewPostgresStore(pool, identity.WithSchema(cfg.DBSchema))
	if err != nil {
		pool.Close()
		return nil, nil, nil, false, err
	}
	convos, err := chat.NewPostgresStore(pool, chat.WithSchema(cfg.DBSchema))
	if err != nil {
		pool.Close()
		return nil, nil, nil, false, err
	}

	log.Info("db.enabled.postgres_store", "schema", cfg.DBSchema)
	return accounts, convos, pool, true, nil
}
