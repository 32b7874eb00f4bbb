//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-composio-go/files/artifact"
	"trpc.group/trpc-go/trpc-composio-go/log"
)

// HydrateDownloads walks a tool result looking for objects carrying a string
// "s3url" key and replaces each with a download descriptor:
//
//	{uri, file_downloaded, s3url, mimeType}
//
// Download failures never propagate: a failed node degrades to an inert
// placeholder with file_downloaded=false and an empty uri, and the rest of
// the result is returned intact. No schema is needed on this walk.
func (h *Hydrator) HydrateDownloads(ctx context.Context, value any, toolSlug string) any {
	if !h.enabled {
		return value
	}
	return h.downloadNode(ctx, value, toolSlug)
}

func (h *Hydrator) downloadNode(ctx context.Context, value any, toolSlug string) any {
	switch node := value.(type) {
	case map[string]any:
		if s3url, ok := node["s3url"].(string); ok {
			return h.downloadDescriptor(ctx, node, s3url, toolSlug)
		}
		out := make(map[string]any, len(node))
		for key, child := range node {
			out[key] = h.downloadNode(ctx, child, toolSlug)
		}
		return out
	case []any:
		out := make([]any, 0, len(node))
		for _, item := range node {
			out = append(out, h.downloadNode(ctx, item, toolSlug))
		}
		return out
	default:
		return value
	}
}

func (h *Hydrator) downloadDescriptor(ctx context.Context, node map[string]any, s3url, toolSlug string) map[string]any {
	mimeType, _ := node["mimetype"].(string)

	descriptor := map[string]any{
		"uri":             "",
		"file_downloaded": false,
		"s3url":           s3url,
		"mimeType":        mimeType,
	}

	uri, err := h.download(ctx, s3url, mimeType, toolSlug)
	if err != nil {
		log.Warnf("failed to download tool result file %s: %v", s3url, err)
		return descriptor
	}
	descriptor["uri"] = uri
	descriptor["file_downloaded"] = true
	return descriptor
}

// download fetches the remote content into a local temp file and returns its
// path. When an artifact store is configured the content is persisted there
// as well, best effort.
func (h *Hydrator) download(ctx context.Context, s3url, mimeType, toolSlug string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s3url, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	name := filepath.Base(req.URL.Path)
	if name == "" || name == "/" || name == "." {
		name = uuid.NewString()
	}
	dir := filepath.Join(os.TempDir(), "composio-files")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+"-"+name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	if h.store != nil {
		key := toolSlug + "/" + name
		if err := h.store.Save(ctx, key, &artifact.Artifact{
			Data:     data,
			MimeType: mimeType,
			URL:      s3url,
			Name:     name,
		}); err != nil {
			log.Warnf("failed to persist artifact %s: %v", key, err)
		}
	}
	return path, nil
}
