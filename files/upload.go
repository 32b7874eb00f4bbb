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
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/log"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// UploadResult is the descriptor spliced into tool arguments in place of a
// raw file reference.
type UploadResult struct {
	Name     string `json:"name"`
	MimeType string `json:"mimetype"`
	S3Key    string `json:"s3key"`
}

// HydrateFiles walks value in lockstep with its schema and uploads every
// file_uploadable leaf whose runtime value is a local path (string) or raw
// content ([]byte). The upload descriptor replaces the raw value in the
// returned tree. Values of other shapes pass through unchanged (already
// hydrated or wrong type; not an error). Branches without a corresponding
// schema node copy unchanged.
//
// Upload failures always propagate as upload errors: a missing uploaded file
// makes the subsequent tool call meaningless.
func (h *Hydrator) HydrateFiles(ctx context.Context, value any, schema *tool.Schema, toolSlug, toolkitSlug string) (any, error) {
	if !h.enabled || schema == nil {
		return value, nil
	}
	return h.hydrateNode(ctx, value, schema, toolSlug, toolkitSlug)
}

func (h *Hydrator) hydrateNode(ctx context.Context, value any, schema *tool.Schema, toolSlug, toolkitSlug string) (any, error) {
	if schema == nil {
		return value, nil
	}

	if schema.FileUploadable {
		switch v := value.(type) {
		case string:
			return h.upload(ctx, v, nil, toolSlug, toolkitSlug)
		case []byte:
			return h.upload(ctx, "", v, toolSlug, toolkitSlug)
		default:
			return value, nil
		}
	}

	switch node := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, child := range node {
			childSchema := schema.Properties[key]
			if childSchema == nil {
				out[key] = child
				continue
			}
			hydrated, err := h.hydrateNode(ctx, child, childSchema, toolSlug, toolkitSlug)
			if err != nil {
				return nil, err
			}
			out[key] = hydrated
		}
		return out, nil
	case []any:
		if schema.Items == nil {
			return node, nil
		}
		out := make([]any, 0, len(node))
		for _, item := range node {
			hydrated, err := h.hydrateNode(ctx, item, schema.Items, toolSlug, toolkitSlug)
			if err != nil {
				return nil, err
			}
			out = append(out, hydrated)
		}
		return out, nil
	default:
		return value, nil
	}
}

// upload pushes one file to the platform's storage via a presigned URL and
// returns the descriptor map spliced into the arguments.
func (h *Hydrator) upload(ctx context.Context, path string, content []byte, toolSlug, toolkitSlug string) (map[string]any, error) {
	name := "upload"
	mimeType := defaultMimeType
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, sdkerrors.NewUploadError("failed to read file %s: %v", path, err).
				WithMetadata("path", path)
		}
		content = data
		name = filepath.Base(path)
		mimeType = mimeTypeFor(path)
	}

	sum := md5.Sum(content)
	slot, err := h.client.Files.CreateUploadRequest(ctx, client.FileUploadRequest{
		ToolSlug:    toolSlug,
		ToolkitSlug: toolkitSlug,
		Filename:    name,
		MimeType:    mimeType,
		MD5:         hex.EncodeToString(sum[:]),
	})
	if err != nil {
		return nil, sdkerrors.NewUploadError("failed to request upload slot for %s: %v", name, err).
			WithMetadata("toolSlug", toolSlug).
			WithCause(err)
	}

	if slot.ExistingURL != "" {
		log.Debugf("file %s already uploaded, reusing key %s", name, slot.Key)
	} else {
		if err := h.put(ctx, slot.NewURL, content, mimeType); err != nil {
			return nil, sdkerrors.NewUploadError("failed to upload %s: %v", name, err).
				WithMetadata("toolSlug", toolSlug).
				WithCause(err)
		}
	}

	return map[string]any{
		"name":     name,
		"mimetype": mimeType,
		"s3key":    slot.Key,
	}, nil
}

func (h *Hydrator) put(ctx context.Context, url string, content []byte, mimeType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := h.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return sdkerrors.NewUploadError("presigned upload returned status %d", resp.StatusCode)
	}
	return nil
}
