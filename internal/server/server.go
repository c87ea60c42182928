// Package server assembles the HTTP surface: the Connect services, health
// and metrics endpoints, and the middleware around them.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/cache"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/rpc"
	"github.com/mmynk/tabsplit/internal/service"
	"github.com/mmynk/tabsplit/internal/storage"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Store         storage.Store
	JWT           *auth.JWTManager
	Previews      cache.PreviewCache
	PreviewTTL    time.Duration
	Metrics       *metrics.Metrics
	AllowedOrigin string
	Logger        *slog.Logger
}

// New returns the root handler.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Previews == nil {
		d.Previews = cache.NoopPreviewCache{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(d.Metrics),
		middleware.RequireAuth(d.JWT, rpc.PublicProcedures...),
	)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(d.Store), d.JWT, d.Logger)
	orderSvc := service.NewOrderService(d.Store)
	splitSvc := service.NewSplitService(d.Store,
		service.WithPreviewCache(d.Previews, d.PreviewTTL),
		service.WithMetrics(d.Metrics),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors(d.AllowedOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	for _, mount := range []func() (string, http.Handler){
		func() (string, http.Handler) { return rpc.NewAuthServiceHandler(authSvc, interceptors) },
		func() (string, http.Handler) { return rpc.NewOrderServiceHandler(orderSvc, interceptors) },
		func() (string, http.Handler) { return rpc.NewSplitServiceHandler(splitSvc, interceptors) },
	} {
		path, handler := mount()
		r.Mount(path, handler)
	}

	return r
}

// requestLogger logs all incoming requests
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// cors adds CORS headers for browser access
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
			w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
