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

// ConnectedAccountsService accesses the connected account endpoints.
type ConnectedAccountsService struct {
	client *Client
}

// List fetches a page of connected accounts matching the query.
func (s *ConnectedAccountsService) List(ctx context.Context, query ConnectedAccountListQuery) (*ConnectedAccountList, error) {
	values := url.Values{}
	if len(query.UserIDs) > 0 {
		values.Set("user_ids", strings.Join(query.UserIDs, ","))
	}
	if len(query.AuthConfigIDs) > 0 {
		values.Set("auth_config_ids", strings.Join(query.AuthConfigIDs, ","))
	}
	if len(query.ToolkitSlugs) > 0 {
		values.Set("toolkit_slugs", strings.Join(query.ToolkitSlugs, ","))
	}
	if len(query.Statuses) > 0 {
		values.Set("statuses", strings.Join(query.Statuses, ","))
	}
	if len(query.Labels) > 0 {
		values.Set("labels", strings.Join(query.Labels, ","))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Cursor != "" {
		values.Set("cursor", query.Cursor)
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/connected_accounts", values, nil)
	if err != nil {
		return nil, err
	}
	var out ConnectedAccountList
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create initiates a new connected account.
func (s *ConnectedAccountsService) Create(ctx context.Context, body ConnectedAccountCreateRequest) (*ConnectedAccount, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/connected_accounts", nil, body)
	if err != nil {
		return nil, err
	}
	var out ConnectedAccount
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches a connected account by id. Returns an *APIError wrapping
// ErrNotFound when the id does not exist.
func (s *ConnectedAccountsService) Retrieve(ctx context.Context, id string) (*ConnectedAccount, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "/api/v3/connected_accounts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var out ConnectedAccount
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a connected account.
func (s *ConnectedAccountsService) Delete(ctx context.Context, id string) error {
	req, err := s.client.newRequest(ctx, http.MethodDelete, "/api/v3/connected_accounts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return s.client.do(req, nil)
}

// Refresh re-issues the credentials of a connected account.
func (s *ConnectedAccountsService) Refresh(ctx context.Context, id string) (*ConnectedAccount, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, "/api/v3/connected_accounts/"+url.PathEscape(id)+"/refresh", nil, nil)
	if err != nil {
		return nil, err
	}
	var out ConnectedAccount
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus enables or disables a connected account.
func (s *ConnectedAccountsService) UpdateStatus(ctx context.Context, id string, body ConnectedAccountUpdateStatusRequest) (*ConnectedAccount, error) {
	req, err := s.client.newRequest(ctx, http.MethodPatch, "/api/v3/connected_accounts/"+url.PathEscape(id)+"/status", nil, body)
	if err != nil {
		return nil, err
	}
	var out ConnectedAccount
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
