//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package connectedaccounts

import (
	"context"
	"time"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/log"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

// Manager performs CRUD and lifecycle operations over connected accounts.
type Manager struct {
	client *client.Client
}

// NewManager creates a connected accounts manager.
func NewManager(c *client.Client) (*Manager, error) {
	if c == nil {
		return nil, sdkerrors.NewConfigurationError("connected accounts manager requires an API client")
	}
	return &Manager{client: c}, nil
}

// ListFilters narrows a connected account listing. All fields are optional.
type ListFilters struct {
	UserIDs       []string
	AuthConfigIDs []string
	ToolkitSlugs  []string
	Statuses      []Status
	Labels        []string
	Limit         int
	Cursor        string
}

// validate checks the outgoing filter shape. Outbound validation failures
// are hard errors raised before any network call.
func (f ListFilters) validate() error {
	for _, s := range f.Statuses {
		if !knownStatuses[s] {
			return sdkerrors.NewValidationError("unknown connected account status filter %q", string(s)).
				WithFix("use one of INITIALIZING, INITIATED, ACTIVE, FAILED, EXPIRED, INACTIVE")
		}
	}
	if f.Limit < 0 {
		return sdkerrors.NewValidationError("limit must not be negative, got %d", f.Limit)
	}
	return nil
}

// List fetches connected accounts matching the filters.
func (m *Manager) List(ctx context.Context, filters ListFilters) (*List, error) {
	if err := filters.validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(filters.Statuses))
	for _, s := range filters.Statuses {
		statuses = append(statuses, string(s))
	}
	page, err := m.client.ConnectedAccounts.List(ctx, client.ConnectedAccountListQuery{
		UserIDs:       filters.UserIDs,
		AuthConfigIDs: filters.AuthConfigIDs,
		ToolkitSlugs:  filters.ToolkitSlugs,
		Statuses:      statuses,
		Labels:        filters.Labels,
		Limit:         filters.Limit,
		Cursor:        filters.Cursor,
	})
	if err != nil {
		return nil, err
	}

	out := &List{
		Items:      make([]ConnectedAccount, 0, len(page.Items)),
		NextCursor: page.NextCursor,
		TotalPages: page.TotalPages,
	}
	for i := range page.Items {
		out.Items = append(out.Items, fromWire(&page.Items[i]))
	}
	return out, nil
}

// InitiateOptions tune connection initiation.
type InitiateOptions struct {
	// AllowMultiple permits creating a second account for a (user, auth
	// config) pair that already has one.
	AllowMultiple bool
	// CallbackURL is the OAuth callback the user is redirected to after
	// granting access.
	CallbackURL string
	// Data carries extra auth material for non-OAuth schemes (API keys,
	// bearer tokens).
	Data map[string]any
}

// Initiate starts a connection attempt for (userID, authConfigID) and
// returns a ConnectionRequest view without blocking on activation. Callers
// opt into waiting via ConnectionRequest.WaitForConnection.
//
// When the pair already has one or more accounts the call fails with a
// conflict error unless opts.AllowMultiple is set, in which case a warning
// is logged and a duplicate account is created.
func (m *Manager) Initiate(ctx context.Context, userID, authConfigID string, opts *InitiateOptions) (*ConnectionRequest, error) {
	if userID == "" {
		return nil, sdkerrors.NewValidationError("userID is required to initiate a connection")
	}
	if authConfigID == "" {
		return nil, sdkerrors.NewValidationError("authConfigID is required to initiate a connection")
	}
	if opts == nil {
		opts = &InitiateOptions{}
	}

	existing, err := m.List(ctx, ListFilters{
		UserIDs:       []string{userID},
		AuthConfigIDs: []string{authConfigID},
	})
	if err != nil {
		return nil, err
	}
	if len(existing.Items) > 0 {
		if !opts.AllowMultiple {
			return nil, sdkerrors.NewConflictError(
				"user %s already has %d connected account(s) for auth config %s",
				userID, len(existing.Items), authConfigID,
			).
				WithMetadata("userId", userID).
				WithMetadata("authConfigId", authConfigID).
				WithMetadata("existingAccountIds", accountIDs(existing.Items)).
				WithFix("set AllowMultiple to create an additional account, or reuse the existing one")
		}
		log.Warnf("creating additional connected account for user %s and auth config %s (%d already exist)",
			userID, authConfigID, len(existing.Items))
	}

	created, err := m.client.ConnectedAccounts.Create(ctx, client.ConnectedAccountCreateRequest{
		AuthConfig: client.ConnectedAccountCreateAuth{ID: authConfigID},
		Connection: client.ConnectedAccountConnection{
			UserID:      userID,
			CallbackURL: opts.CallbackURL,
			Data:        opts.Data,
		},
	})
	if err != nil {
		return nil, err
	}

	return &ConnectionRequest{
		ID:          created.ID,
		Status:      Status(created.Status),
		RedirectURL: redirectURLFrom(created),
		client:      m.client,
	}, nil
}

func accountIDs(items []ConnectedAccount) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Get fetches a connected account by id.
func (m *Manager) Get(ctx context.Context, id string) (*ConnectedAccount, error) {
	w, err := m.client.ConnectedAccounts.Retrieve(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("connected account", id).WithCause(err)
		}
		return nil, err
	}
	acc := fromWire(w)
	return &acc, nil
}

// Delete removes a connected account.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.client.ConnectedAccounts.Delete(ctx, id); err != nil {
		if client.IsNotFound(err) {
			return sdkerrors.NewNotFoundError("connected account", id).WithCause(err)
		}
		return err
	}
	return nil
}

// Refresh re-issues the account credentials remotely. No local state is kept
// beyond the returned value.
func (m *Manager) Refresh(ctx context.Context, id string) (*ConnectedAccount, error) {
	w, err := m.client.ConnectedAccounts.Refresh(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("connected account", id).WithCause(err)
		}
		return nil, err
	}
	acc := fromWire(w)
	return &acc, nil
}

// Enable re-enables a disabled connected account.
func (m *Manager) Enable(ctx context.Context, id string) (*ConnectedAccount, error) {
	return m.updateStatus(ctx, id, true)
}

// Disable disables a connected account without deleting it.
func (m *Manager) Disable(ctx context.Context, id string) (*ConnectedAccount, error) {
	return m.updateStatus(ctx, id, false)
}

func (m *Manager) updateStatus(ctx context.Context, id string, enabled bool) (*ConnectedAccount, error) {
	w, err := m.client.ConnectedAccounts.UpdateStatus(ctx, id, client.ConnectedAccountUpdateStatusRequest{Enabled: enabled})
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("connected account", id).WithCause(err)
		}
		return nil, err
	}
	acc := fromWire(w)
	return &acc, nil
}

// WaitForConnection builds a fresh ConnectionRequest for an existing account
// id and waits for it to become ACTIVE. This is the standalone entry point;
// a ConnectionRequest returned by Initiate offers the same behavior.
func (m *Manager) WaitForConnection(ctx context.Context, id string, timeout time.Duration) (*ConnectedAccount, error) {
	req := &ConnectionRequest{ID: id, client: m.client}
	return req.WaitForConnection(ctx, timeout)
}
