// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package storage provides persistence for the user preference model.
//
// The model is stored as a single serialized blob under a fixed key, with a
// version field for forward migration and a soft size cap enforced by history
// pruning before write. Loads are total: absence, corruption, or a failed
// legacy migration all resolve to a freshly initialized model, never an error
// that could block the interaction loop.
package storage

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// ModelKey is the fixed storage key for the serialized user model.
const ModelKey = "swipeeats:model"

// SoftSizeLimit is the serialized-size threshold above which swipe history
// is pruned before writing. History is disposable working memory; weights
// already folded in are unaffected.
const SoftSizeLimit = 100 * 1024

// PruneHistoryTo is the number of most-recent history entries kept when the
// size cap is exceeded.
const PruneHistoryTo = 30

// Store is the persistence lifecycle for the user model. The engine is the
// only caller; a load-mutate-save sequence per swipe completes before the
// next swipe's load is issued.
type Store interface {
	// Load returns the persisted model, or a freshly initialized one on
	// absence or any deserialization failure. It never fails upward.
	Load() *recommend.UserModel

	// Save persists the model best-effort, pruning history first if the
	// serialized blob exceeds the soft size cap. Errors are for logging
	// only; callers must not let them interrupt the interaction loop.
	Save(m *recommend.UserModel) error

	// Reset discards persisted state unconditionally.
	Reset() error
}

// encodeModel serializes the model, pruning history to the most recent
// PruneHistoryTo entries when the blob exceeds the soft size cap.
func encodeModel(m *recommend.UserModel) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal model: %w", err)
	}

	if len(data) > SoftSizeLimit && len(m.SwipeHistory) > PruneHistoryTo {
		pruned := m.Clone()
		pruned.SwipeHistory = pruned.SwipeHistory[len(pruned.SwipeHistory)-PruneHistoryTo:]
		data, err = json.Marshal(pruned)
		if err != nil {
			return nil, fmt.Errorf("marshal pruned model: %w", err)
		}
	}

	return data, nil
}

// decodeModel deserializes a persisted blob. Versionless or older blobs go
// through the best-effort legacy migration.
func decodeModel(data []byte) (*recommend.UserModel, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}

	if probe.Version < recommend.ModelVersion {
		return migrateLegacy(data), nil
	}

	var m recommend.UserModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	m.Normalize()
	return &m, nil
}
