// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package main is the entry point for the SwipeEats server.
//
// SwipeEats is a swipe-to-discover restaurant recommender. The server loads
// a restaurant catalog from CSV, learns the user's preferences online from
// like/dislike swipes, and serves diversified decks over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, YAML file, and env vars (Koanf v2)
//  2. Logging: global zerolog instance
//  3. Model store: BadgerDB-backed user model persistence
//  4. Catalog: restaurant dataset loaded from CSV with distance annotation
//  5. Engine: online learner, scorer, and MMR reranker
//  6. HTTP server: REST API plus Prometheus /metrics
//
// # Configuration
//
// Common environment variables:
//   - HTTP_PORT: listen port (default 8080)
//   - DATASET_PATH: restaurant CSV path (default /data/restaurants.csv)
//   - MODEL_STORE_PATH: BadgerDB directory (default /data/model)
//   - LOG_LEVEL: debug, info, warn, error (default info)
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// new connections, waits up to 10s for in-flight requests, then closes the
// model store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/swipeeats/swipeeats/internal/api"
	"github.com/swipeeats/swipeeats/internal/config"
	"github.com/swipeeats/swipeeats/internal/dataset"
	"github.com/swipeeats/swipeeats/internal/geo"
	"github.com/swipeeats/swipeeats/internal/logging"
	"github.com/swipeeats/swipeeats/internal/metrics"
	"github.com/swipeeats/swipeeats/internal/recommend"
	"github.com/swipeeats/swipeeats/internal/recommend/reranking"
	"github.com/swipeeats/swipeeats/internal/recommend/storage"
	"github.com/swipeeats/swipeeats/internal/session"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("dataset", cfg.Data.DatasetPath).
		Str("model_store", cfg.Storage.Path).
		Int("port", cfg.Server.Port).
		Msg("starting swipeeats")

	// Model store
	var db *badger.DB
	if cfg.Storage.InMemory {
		db, err = badger.Open(badger.DefaultOptions("").WithInMemory(true))
	} else {
		db, err = storage.OpenBadger(cfg.Storage.Path, logger)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open model store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing model store")
		}
	}()
	store := storage.NewBadgerStore(db, logger)

	// Restaurant catalog
	origin := geo.Location{
		Latitude:  cfg.Data.UserLatitude,
		Longitude: cfg.Data.UserLongitude,
	}
	loader := dataset.NewLoader(origin, logger)
	restaurants, err := loader.LoadFile(cfg.Data.DatasetPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load restaurant dataset")
	}
	if len(restaurants) == 0 {
		logging.Fatal().Msg("restaurant dataset is empty")
	}

	// Recommendation engine
	engine, err := recommend.NewEngine(&cfg.Recommend, store, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create recommendation engine")
	}
	engine.SetCatalog(restaurants)
	engine.SetReranker(reranking.NewMMR(cfg.Recommend.Diversity.Lambda, cfg.Recommend.Diversity.DeckSize))
	engine.SetObserver(metrics.EngineObserver{})

	sprints := session.NewManager(cfg.Session.SprintSize, logger)
	sprints.SetObserver(metrics.SessionObserver{})

	// HTTP server
	handler := api.NewHandler(engine, sprints, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}

	logging.Info().Msg("shutdown complete")
}
