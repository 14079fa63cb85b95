package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/uniqueid/internal/config"
	"github.com/vango-dev/uniqueid/pkg/metrics"
	"github.com/vango-dev/uniqueid/pkg/mount"
	"github.com/vango-dev/uniqueid/pkg/render"
	"github.com/vango-dev/uniqueid/pkg/store"
	"github.com/vango-dev/uniqueid/pkg/uniqueid"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// requestIDHeader carries the request ID in both directions.
const requestIDHeader = "X-Request-ID"

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo tree over HTTP",
		Long: `Serve one long-lived demo tree over HTTP.

Routes:
  GET  /          HTML of the last render pass
  POST /rerender  run a render pass; IDs keep counting
  POST /version   change the Provider version; IDs restart at 1
  POST /touch     change state the view ignores; nothing re-renders
  GET  /metrics   Prometheus metrics (when enabled)

Examples:
  uniqueid serve
  uniqueid serve --addr=:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				g.cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), g)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, g *globals) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, g.cfg, g.logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:        g.cfg.Server.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: g.cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	g.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), g.cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// server holds one mounted demo tree driven by a store.
type server struct {
	cfg      *config.Config
	logger   *slog.Logger
	root     *mount.Root
	store    *store.Store[demoState]
	renderer *render.Renderer
	registry *prometheus.Registry
	unbind   func()
}

// newServer mounts the demo tree and binds it to a fresh store. ctx bounds
// render passes triggered by dispatches.
func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*server, error) {
	s := &server{
		cfg:      cfg,
		logger:   logger,
		store:    store.New(demoReducer, demoState{}),
		renderer: render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent}),
		registry: prometheus.NewRegistry(),
	}

	opts := []mount.Option{
		mount.WithLogger(logger),
		mount.WithTracer(tracerFor(cfg)),
	}
	var obs uniqueid.Observer
	if cfg.Metrics.Enabled {
		c := metrics.New(
			metrics.WithRegistry(s.registry),
			metrics.WithNamespace(cfg.Metrics.Namespace),
		)
		opts = append(opts, mount.WithObserver(c))
		obs = c
	}
	s.root = mount.New(nil, opts...)

	items, base := cfg.Demo.Items, cfg.Demo.Version
	unbind, err := store.Bind(ctx, s.root, s.store,
		func(st demoState) int { return st.Generation },
		func(generation int) vdom.Component {
			return demoTree(items, demoVersion(base, generation), obs)
		},
		func(err error) {
			logger.Error("render after dispatch failed", "error", err)
		},
	)
	if err != nil {
		s.root.Dispose()
		return nil, err
	}
	s.unbind = unbind
	return s, nil
}

// Close stops the store binding and disposes the tree.
func (s *server) Close() {
	s.unbind()
	s.root.Dispose()
}

// Routes returns the HTTP handler.
func (s *server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/rerender", s.handleRerender)
	r.Post("/version", s.handleDispatch(actionBumpVersion))
	r.Post("/touch", s.handleDispatch(actionTouch))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// requestLogger assigns a request ID and logs each request.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeTree(w, s.root.Last())
}

func (s *server) handleRerender(w http.ResponseWriter, r *http.Request) {
	tree, err := s.root.Render(r.Context())
	if err != nil {
		s.logger.Error("render failed", "request_id", w.Header().Get(requestIDHeader), "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	s.writeTree(w, tree)
}

// stateResponse is returned by dispatch endpoints.
type stateResponse struct {
	Generation int `json:"generation"`
	Touches    int `json:"touches"`
	Passes     int `json:"passes"`
}

func (s *server) handleDispatch(action demoAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := s.store.Dispatch(action)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stateResponse{
			Generation: st.Generation,
			Touches:    st.Touches,
			Passes:     s.root.Passes(),
		})
	}
}

func (s *server) writeTree(w http.ResponseWriter, tree *vdom.VNode) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><body>\n")
	if err := s.renderer.RenderToWriter(&buf, tree); err != nil {
		s.logger.Error("html render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	buf.WriteString("\n</body></html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
