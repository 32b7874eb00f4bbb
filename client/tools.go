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
	"strings"
)

// ToolsService accesses the tool catalog and execution endpoints.
type ToolsService struct {
	client *Client
}

// List fetches a page of catalog tools matching the query.
func (s *ToolsService) List(ctx context.Context, query ToolListQuery) (*ToolList, error) {
	values := url.Values{}
	if len(query.ToolSlugs) > 0 {
		values.Set("tool_slugs", strings.Join(query.ToolSlugs, ","))
	}
	if len(query.ToolkitSlugs) > 0 {
		values.Set("toolkit_slug", strings.Join(query.ToolkitSlugs, ","))
	}
	if len(query.Tags) > 0 {
		values.Set("tags", strings.Join(query.Tags, ","))
	}
	if len(query.Scopes) > 0 {
		values.Set("scopes", strings.Join(query.Scopes, ","))
	}
	if len(query.AuthConfigIDs) > 0 {
		values.Set("auth_config_ids", strings.Join(query.AuthConfigIDs, ","))
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Cursor != "" {
		values.Set("cursor", query.Cursor)
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/tools", values, nil)
	if err != nil {
		return nil, err
	}
	var out ToolList
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches a single tool by slug. Returns an *APIError wrapping
// ErrNotFound when the slug does not exist.
func (s *ToolsService) Retrieve(ctx context.Context, slug string) (*Tool, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/tools/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return nil, err
	}
	var out Tool
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Execute runs a tool remotely.
func (s *ToolsService) Execute(ctx context.Context, slug string, body ToolExecuteRequest) (*ToolExecuteResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/tools/execute/"+url.PathEscape(slug), nil, body)
	if err != nil {
		return nil, err
	}
	var out ToolExecuteResponse
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Proxy performs a raw HTTP call through the credentials of a connected
// account.
func (s *ToolsService) Proxy(ctx context.Context, body ProxyRequest) (*ProxyResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/tools/execute/proxy", nil, body)
	if err != nil {
		return nil, err
	}
	var out ProxyResponse
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveEnum fetches the list of all known tool slugs.
func (s *ToolsService) RetrieveEnum(ctx context.Context) ([]string, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/tools/enum", nil, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Items []string `json:"items"`
	}
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// GetInput asks the backend to derive tool arguments from natural language.
func (s *ToolsService) GetInput(ctx context.Context, slug string, body ToolInputRequest) (*ToolInputResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/tools/"+url.PathEscape(slug)+"/input", nil, body)
	if err != nil {
		return nil, err
	}
	var out ToolInputResponse
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
