//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package files implements the bidirectional file hydration subsystem.
//
// Before a tool executes, arguments whose schema carries the
// file_uploadable annotation are replaced by upload descriptors (the local
// content is pushed to the platform's storage through a presigned URL).
// After a tool executes, result nodes carrying an s3url are replaced by
// download descriptors pointing at local copies of the remote content.
//
// Both directions are tree walks that return new values; inputs are never
// mutated. The whole subsystem is gated by the facade's
// AutoUploadDownloadFiles flag.
package files

import (
	"mime"
	"net/http"
	"path/filepath"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/files/artifact"
)

const defaultMimeType = "application/octet-stream"

// Hydrator performs upload and download hydration for one SDK instance.
type Hydrator struct {
	client  *client.Client
	http    *http.Client
	enabled bool
	store   artifact.Store
}

// Option configures a Hydrator.
type Option func(*Hydrator)

// WithEnabled toggles hydration. When disabled both walks are identity
// functions and raw file references pass through untouched.
func WithEnabled(enabled bool) Option {
	return func(h *Hydrator) { h.enabled = enabled }
}

// WithArtifactStore sets an optional store where downloaded content is
// persisted in addition to the local temp copy.
func WithArtifactStore(store artifact.Store) Option {
	return func(h *Hydrator) { h.store = store }
}

// NewHydrator creates a hydrator bound to the given API client. Hydration is
// enabled by default.
func NewHydrator(c *client.Client, opts ...Option) *Hydrator {
	h := &Hydrator{
		client:  c,
		enabled: true,
	}
	if c != nil {
		h.http = c.HTTPClient()
	}
	if h.http == nil {
		h.http = http.DefaultClient
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether hydration is active.
func (h *Hydrator) Enabled() bool {
	return h.enabled
}

func mimeTypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return defaultMimeType
}
