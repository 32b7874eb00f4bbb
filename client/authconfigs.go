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

// AuthConfig is the wire representation of an auth config: the credentials
// template connections of a toolkit are created under.
type AuthConfig struct {
	ID                string      `json:"id"`
	Name              string      `json:"name,omitempty"`
	Toolkit           WireToolkit `json:"toolkit"`
	AuthScheme        string      `json:"auth_scheme,omitempty"`
	IsComposioManaged bool        `json:"is_composio_managed,omitempty"`
	IsDisabled        bool        `json:"is_disabled,omitempty"`
}

// AuthConfigList is a page of auth configs.
type AuthConfigList struct {
	Items      []AuthConfig `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// AuthConfigListQuery is the query shape of the auth config list endpoint.
type AuthConfigListQuery struct {
	ToolkitSlug       string
	IsComposioManaged *bool
	Limit             int
	Cursor            string
}

// AuthConfigCreateRequest is the wire request of the auth config create
// endpoint.
type AuthConfigCreateRequest struct {
	Toolkit    WireToolkit     `json:"toolkit"`
	AuthConfig *AuthConfigSpec `json:"auth_config,omitempty"`
}

// AuthConfigSpec selects how the created auth config is managed.
type AuthConfigSpec struct {
	Type       string `json:"type"` // "use_composio_managed_auth" or "use_custom_auth"
	AuthScheme string `json:"authScheme,omitempty"`
}

// AuthConfigsService accesses the auth config endpoints.
type AuthConfigsService struct {
	client *Client
}

// List fetches a page of auth configs matching the query.
func (s *AuthConfigsService) List(ctx context.Context, query AuthConfigListQuery) (*AuthConfigList, error) {
	values := url.Values{}
	if query.ToolkitSlug != "" {
		values.Set("toolkit_slug", query.ToolkitSlug)
	}
	if query.IsComposioManaged != nil {
		values.Set("is_composio_managed", strconv.FormatBool(*query.IsComposioManaged))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Cursor != "" {
		values.Set("cursor", query.Cursor)
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/auth_configs", values, nil)
	if err != nil {
		return nil, err
	}
	var out AuthConfigList
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates an auth config for a toolkit.
func (s *AuthConfigsService) Create(ctx context.Context, body AuthConfigCreateRequest) (*AuthConfig, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/auth_configs", nil, body)
	if err != nil {
		return nil, err
	}
	var out AuthConfig
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches an auth config by id.
func (s *AuthConfigsService) Retrieve(ctx context.Context, id string) (*AuthConfig, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/auth_configs/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var out AuthConfig
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
