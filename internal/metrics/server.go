package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

const (
	defaultHTTPReadTimeout         = 10 * time.Second
	defaultHTTPWriteTimeout        = 30 * time.Second
	defaultHTTPIdleTimeout         = 60 * time.Second
	defaultGracefulShutdownTimeout = 5 * time.Second
)

// NewRouter mounts the health and metrics endpoints plus a read-only entity
// lookup. The lookup is omitted when store is nil.
func NewRouter(gatherer prometheus.Gatherer, store entity.Store, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if store != nil {
		r.Get("/entities/{kind}/{id}", handleGetEntity(store, logger))
	}
	return r
}

func handleGetEntity(store entity.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := model.Kind(chi.URLParam(r, "kind"))
		id := chi.URLParam(r, "id")
		data, ok, err := store.LoadEntity(r.Context(), kind, id)
		if err != nil {
			logger.Error("load entity", zap.Error(err), zap.String("kind", string(kind)), zap.String("id", id))
			http.Error(w, "failed to load entity", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "entity not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

// Serve runs handler on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  defaultHTTPReadTimeout,
		WriteTimeout: defaultHTTPWriteTimeout,
		IdleTimeout:  defaultHTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
