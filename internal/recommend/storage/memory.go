// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package storage

import (
	"sync"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// MemoryStore keeps the serialized model in memory. It runs the same codec
// path as BadgerStore, including pruning and migration, so tests exercise
// identical persistence semantics without a database on disk.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory model store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored model, or a fresh one when nothing is stored or
// the blob cannot be decoded.
func (s *MemoryStore) Load() *recommend.UserModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return recommend.NewUserModel()
	}
	m, err := decodeModel(s.data)
	if err != nil {
		return recommend.NewUserModel()
	}
	return m
}

// Save serializes and stores the model.
func (s *MemoryStore) Save(m *recommend.UserModel) error {
	data, err := encodeModel(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Reset clears the stored model.
func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// SetRaw replaces the stored blob directly, bypassing the encoder. Tests use
// it to inject legacy or corrupt payloads.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.mu.Unlock()
}

// RawSize reports the stored blob size in bytes.
func (s *MemoryStore) RawSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Ensure interface compliance.
var _ Store = (*MemoryStore)(nil)
