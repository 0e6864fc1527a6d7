// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package api provides HTTP routing for the SwipeEats engine using the Chi
// router with middleware from the Chi ecosystem.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swipeeats/swipeeats/internal/metrics"
)

// RouterConfig holds the HTTP-layer settings.
type RouterConfig struct {
	CORSOrigins     []string
	RateLimitReqs   int
	RateLimitWindow time.Duration
}

// NewRouter builds the full route tree.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		r.Use(prometheusMiddleware)

		r.Get("/health", handler.Health)
		r.Get("/restaurants", handler.Restaurants)
		r.Get("/deck", handler.Deck)
		r.Post("/swipes", handler.RecordSwipe)
		r.Get("/model", handler.Model)
		r.Post("/model/reset", handler.ResetModel)

		r.Route("/sprints", func(r chi.Router) {
			r.Post("/", handler.StartSprint)
			r.Get("/{id}", handler.GetSprint)
			r.Post("/{id}/swipes", handler.SprintSwipe)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// prometheusMiddleware records request counts and latency per route.
func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(ww.Status()), time.Since(start))
	})
}
