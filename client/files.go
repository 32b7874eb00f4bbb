//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package client

import (
	"context"
	"net/http"
)

// FilesService accesses the file upload endpoints.
type FilesService struct {
	client *Client
}

// CreateUploadRequest asks the backend for a presigned upload slot for the
// given file content.
func (s *FilesService) CreateUploadRequest(ctx context.Context, body FileUploadRequest) (*FileUploadResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/files/upload/request", nil, body)
	if err != nil {
		return nil, err
	}
	var out FileUploadResponse
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
