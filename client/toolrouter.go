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
	"net/url"
	"strconv"
)

// ToolRouterService accesses the tool router session endpoints.
type ToolRouterService struct {
	client *Client
}

// CreateSession allocates a new router session for a user.
func (s *ToolRouterService) CreateSession(ctx context.Context, body RouterSessionCreateRequest) (*RouterSession, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/tool_router/sessions", nil, body)
	if err != nil {
		return nil, err
	}
	var out RouterSession
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveSession rehydrates an existing router session by id. Returns an
// *APIError wrapping ErrNotFound when the id does not exist.
func (s *ToolRouterService) RetrieveSession(ctx context.Context, id string) (*RouterSession, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/tool_router/sessions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var out RouterSession
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Link triggers a per-toolkit connection flow within a session.
func (s *ToolRouterService) Link(ctx context.Context, id string, body RouterLinkRequest) (*RouterLinkResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/tool_router/sessions/"+url.PathEscape(id)+"/link", nil, body)
	if err != nil {
		return nil, err
	}
	var out RouterLinkResponse
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Toolkits fetches the per-toolkit connection state within a session.
func (s *ToolRouterService) Toolkits(ctx context.Context, id string, limit int, cursor string) (*RouterToolkitStatusList, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		values.Set("cursor", cursor)
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/tool_router/sessions/"+url.PathEscape(id)+"/toolkits", values, nil)
	if err != nil {
		return nil, err
	}
	var out RouterToolkitStatusList
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
