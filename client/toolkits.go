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

// ToolkitsService accesses the toolkit catalog endpoints.
type ToolkitsService struct {
	client *Client
}

// Retrieve fetches a toolkit by slug. Returns an *APIError wrapping
// ErrNotFound when the slug does not exist.
func (s *ToolkitsService) Retrieve(ctx context.Context, slug string) (*Toolkit, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/toolkits/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return nil, err
	}
	var out Toolkit
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List fetches a page of toolkits matching the query.
func (s *ToolkitsService) List(ctx context.Context, query ToolkitListQuery) (*ToolkitList, error) {
	values := url.Values{}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.IsLocal != nil {
		values.Set("is_local", strconv.FormatBool(*query.IsLocal))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Cursor != "" {
		values.Set("cursor", query.Cursor)
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/toolkits", values, nil)
	if err != nil {
		return nil, err
	}
	var out ToolkitList
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveCategories fetches the toolkit category list.
func (s *ToolkitsService) RetrieveCategories(ctx context.Context) (*ToolkitCategoryList, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/toolkits/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	var out ToolkitCategoryList
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
