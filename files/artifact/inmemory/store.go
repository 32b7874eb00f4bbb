//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory artifact store, suitable for tests
// and development.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"trpc.group/trpc-go/trpc-composio-go/files/artifact"
)

// Store is an in-memory implementation of artifact.Store.
type Store struct {
	mu        sync.RWMutex
	artifacts map[string]*artifact.Artifact
}

// New creates an in-memory artifact store.
func New() *Store {
	return &Store{artifacts: make(map[string]*artifact.Artifact)}
}

// Save stores an artifact under key.
func (s *Store) Save(ctx context.Context, key string, art *artifact.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[key] = art
	return nil
}

// Load returns the artifact under key, or nil when absent.
func (s *Store) Load(ctx context.Context, key string) (*artifact.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifacts[key], nil
}

// Delete removes the artifact under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artifacts, key)
	return nil
}

// List returns the stored keys under prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.artifacts {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
