// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// BadgerStore persists the user model in an embedded BadgerDB, durable
// across restarts.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewBadgerStore creates a BadgerDB-backed model store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStore(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "model-store").Logger(),
	}
}

// OpenBadger opens (or creates) a BadgerDB at the given directory with
// logging routed through zerolog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(dir string, logger zerolog.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return db, nil
}

// Load returns the persisted model, or a fresh one on absence or any
// deserialization error. Failures are logged and swallowed.
func (s *BadgerStore) Load() *recommend.UserModel {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ModelKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return recommend.NewUserModel()
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read persisted model, starting fresh")
		return recommend.NewUserModel()
	}

	m, err := decodeModel(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("persisted model unreadable, starting fresh")
		return recommend.NewUserModel()
	}
	return m
}

// Save persists the model, pruning history first when the blob exceeds the
// soft size cap.
func (s *BadgerStore) Save(m *recommend.UserModel) error {
	data, err := encodeModel(m)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(ModelKey), data)
	})
	if err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Reset deletes the persisted model unconditionally.
func (s *BadgerStore) Reset() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(ModelKey))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete model: %w", err)
	}
	return nil
}

// badgerLogger adapts badger's logger interface onto zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msgf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msgf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}

// Ensure interface compliance.
var _ Store = (*BadgerStore)(nil)
