// cmd/loanos/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loanos-client/internal/api"
	"loanos-client/internal/common/config"
	httpclient "loanos-client/internal/common/http"
	"loanos-client/internal/common/logger"
	"loanos-client/internal/common/observability"
	"loanos-client/internal/common/storage"
	"loanos-client/internal/guard"
	"loanos-client/internal/session"
	"loanos-client/internal/views"
	"loanos-client/pkg/registry"
)

// app holds everything a command needs. It is filled in by open before any
// subcommand runs.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	obs      *observability.Observability
	sessions *session.Store
	api      *api.Client

	closers []func()
}

func (a *app) open(configPath, logLevel string) error {
	cfg, err := config.Load(config.Options{ConfigFile: configPath})
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	a.cfg = cfg

	if out := cfg.Logging.Output; out != "stdout" && out != "stderr" {
		if err := os.MkdirAll(filepath.Dir(out), 0o700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	a.log = logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	a.log.Info("starting", map[string]interface{}{"config": cfg.String(), "version": Version})

	a.obs = observability.New(cfg.App.Name, a.log)
	a.closers = append(a.closers, a.obs.Shutdown)

	tokens, err := a.tokenStore()
	if err != nil {
		return err
	}
	a.sessions = session.NewStore(tokens, a.log)

	hc := httpclient.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout(),
		httpclient.WithTokenSource(a.sessions),
		httpclient.WithObservability(a.obs),
		httpclient.WithLogger(a.log),
	)
	var endpoints *registry.EndpointRegistry
	if cfg.API.Endpoints != "" {
		if endpoints, err = registry.LoadRegistry(cfg.API.Endpoints); err != nil {
			return fmt.Errorf("load endpoint catalogue %s: %w", cfg.API.Endpoints, err)
		}
	}
	a.api = api.NewClient(hc, endpoints)

	if cfg.Metrics.Enabled() {
		a.serveMetrics(cfg.Metrics.ListenAddress)
	}
	return nil
}

func (a *app) tokenStore() (storage.TokenStore, error) {
	switch a.cfg.Session.Store {
	case config.StoreRedis:
		client := storage.NewRedis(a.cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })

		store := storage.NewRedisStore(client, a.cfg.Session.Key)
		store.TTL = session.TTL
		a.log.Info("session store ready", map[string]interface{}{"store": "redis", "key": store.Key()})
		return store, nil
	default:
		store := storage.NewFileStore(a.cfg.Session.Path)
		a.log.Info("session store ready", map[string]interface{}{"store": "file", "path": store.Path()})
		return store, nil
	}
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.Info("metrics server listening", map[string]interface{}{"address": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) deps() views.Deps {
	return views.Deps{Logger: a.log, Obs: a.obs}
}

// restore loads the persisted session and applies g to it. Commands that
// need a login fail here instead of sending an unauthenticated request.
func (a *app) restore(ctx context.Context, g guard.Guard) (session.State, error) {
	st := a.sessions.Restore(ctx)
	if g == nil {
		return st, nil
	}
	d := g.Check(st)
	if d.Outcome == guard.Redirect {
		switch d.Target {
		case session.DestinationLogin:
			return st, errors.New("not logged in; run `loanos login` first")
		case session.DestinationUser:
			return st, errors.New("this command needs an admin account")
		case session.DestinationAdmin:
			return st, errors.New("admins cannot submit applications")
		}
	}
	return st, nil
}

// failure prefers the message the view would have shown.
func failure(r *views.Runner, err error) error {
	if msg := r.Status().Error; msg != "" {
		return errors.New(msg)
	}
	return err
}
