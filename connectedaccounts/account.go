//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package connectedaccounts manages connected accounts and the connection
// establishment lifecycle.
//
// A connected account holds the credentials binding one user to one toolkit
// (e.g. a Gmail OAuth grant). Accounts are created and transitioned entirely
// by the backend; the SDK observes status changes by polling.
package connectedaccounts

import (
	"time"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/log"
)

// Status is the lifecycle status of a connected account. The string values
// are wire-exact and must not be changed.
type Status string

// Connected account statuses.
const (
	StatusInitializing Status = "INITIALIZING"
	StatusInitiated    Status = "INITIATED"
	StatusActive       Status = "ACTIVE"
	StatusFailed       Status = "FAILED"
	StatusExpired      Status = "EXPIRED"
	StatusInactive     Status = "INACTIVE"
)

// knownStatuses is the set accepted in outbound filters.
var knownStatuses = map[Status]bool{
	StatusInitializing: true,
	StatusInitiated:    true,
	StatusActive:       true,
	StatusFailed:       true,
	StatusExpired:      true,
	StatusInactive:     true,
}

// IsTerminal reports whether the status ends a connection attempt. Only
// ACTIVE is success-terminal; FAILED and EXPIRED are failure-terminal.
func (s Status) IsTerminal() bool {
	return s == StatusActive || s == StatusFailed || s == StatusExpired
}

// ConnectedAccount is the SDK view of a connected account, flattened from
// the wire shape.
type ConnectedAccount struct {
	// ID is the account identifier.
	ID string `json:"id"`
	// Status is the current lifecycle status.
	Status Status `json:"status"`
	// AuthConfigID identifies the auth config the account was created from.
	AuthConfigID string `json:"authConfigId"`
	// IsComposioManaged reports whether the auth config uses platform
	// managed credentials.
	IsComposioManaged bool `json:"isComposioManaged"`
	// IsAuthConfigDisabled reports whether the auth config is disabled.
	IsAuthConfigDisabled bool `json:"isAuthConfigDisabled"`
	// ToolkitSlug is the toolkit the account authenticates against.
	ToolkitSlug string `json:"toolkitSlug"`
	// UserID is the owning user.
	UserID string `json:"userId"`
	// Disabled reports whether the account itself is disabled.
	Disabled bool `json:"disabled"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last update timestamp.
	UpdatedAt time.Time `json:"updatedAt"`
	// State is the opaque auth material reported by the backend.
	State map[string]any `json:"state,omitempty"`
	// StatusReason explains a failure-terminal status when the backend
	// provides one.
	StatusReason string `json:"statusReason,omitempty"`
}

// List is a page of connected accounts.
type List struct {
	Items      []ConnectedAccount `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
	TotalPages int                `json:"totalPages,omitempty"`
}

// fromWire flattens a wire connected account into the SDK shape. Inbound
// drift degrades gracefully: unparseable timestamps are logged and zeroed
// rather than failing the whole call, since the backend is the source of
// truth for this data.
func fromWire(w *client.ConnectedAccount) ConnectedAccount {
	acc := ConnectedAccount{
		ID:                   w.ID,
		Status:               Status(w.Status),
		AuthConfigID:         w.AuthConfig.ID,
		IsComposioManaged:    w.AuthConfig.IsComposioManaged,
		IsAuthConfigDisabled: w.AuthConfig.IsDisabled,
		ToolkitSlug:          w.Toolkit.Slug,
		UserID:               w.UserID,
		Disabled:             w.IsDisabled,
	}
	if w.State != nil {
		acc.State = w.State.Val
	}
	if w.StatusReason != nil {
		acc.StatusReason = *w.StatusReason
	}
	acc.CreatedAt = parseTime(w.ID, "created_at", w.CreatedAt)
	acc.UpdatedAt = parseTime(w.ID, "updated_at", w.UpdatedAt)
	if !knownStatuses[acc.Status] && w.Status != "" {
		log.Warnf("connected account %s reported unknown status %q, passing through", w.ID, w.Status)
	}
	return acc
}

func parseTime(accountID, field, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Warnf("connected account %s has unparseable %s %q: %v", accountID, field, value, err)
		return time.Time{}
	}
	return ts
}

// redirectURLFrom extracts the OAuth redirect URL nested in the connection
// state of a freshly created account, "" when absent.
func redirectURLFrom(w *client.ConnectedAccount) string {
	if w.State == nil || w.State.Val == nil {
		return ""
	}
	if u, ok := w.State.Val["redirectUrl"].(string); ok {
		return u
	}
	if u, ok := w.State.Val["redirect_url"].(string); ok {
		return u
	}
	return ""
}
