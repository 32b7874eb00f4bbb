//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package artifact defines the storage contract for files produced by tool
// executions. The file hydration subsystem can persist downloaded content
// into a Store so results survive beyond the per-call temp files.
package artifact

import "context"

// Artifact is one stored file.
type Artifact struct {
	// Data contains the raw bytes.
	Data []byte `json:"data,omitempty"`
	// MimeType is the IANA MIME type of the data.
	MimeType string `json:"mime_type,omitempty"`
	// URL is the remote origin the artifact was fetched from, if any.
	URL string `json:"url,omitempty"`
	// Name is an optional display name or filename.
	Name string `json:"name,omitempty"`
}

// Store is the interface artifact backends implement.
type Store interface {
	// Save stores an artifact under key, overwriting any previous value.
	Save(ctx context.Context, key string, art *Artifact) error

	// Load returns the artifact stored under key, or nil when absent.
	Load(ctx context.Context, key string) (*Artifact, error)

	// Delete removes the artifact stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys under the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
