package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formguard/internal/rsvp"
	"github.com/goliatone/go-formguard/pkg/config"
	"github.com/goliatone/go-formguard/pkg/httpform"
	"github.com/goliatone/go-formguard/pkg/registry"
)

// newRouter guards every configured form route. Without configured forms the
// RSVP form is served.
func newRouter(cfg *config.Config, promReg *prometheus.Registry, log *zap.Logger) (http.Handler, error) {
	if len(cfg.Forms) == 0 {
		cfg.Forms = []config.Form{rsvp.Form()}
	}
	reg, err := registry.New(cfg, registry.WithLogger(log))
	if err != nil {
		return nil, err
	}
	metrics := httpform.NewMetrics(promReg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	for _, form := range cfg.Forms {
		guard := httpform.Guard(form,
			httpform.WithResolver(reg),
			httpform.WithMetrics(metrics),
			httpform.WithLogger(log),
			httpform.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		)
		r.With(guard).Post(form.RoutePath(), formHandler(form, log))
		log.Debug("form route registered", zap.String("form", form.ID), zap.String("path", form.RoutePath()))
	}
	return r, nil
}

func formHandler(form config.Form, log *zap.Logger) http.HandlerFunc {
	if form.ID == rsvp.FormID {
		return rsvp.Handler{Logger: log}.ServeHTTP
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"form": form.ID, "status": "accepted"})
	}
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
