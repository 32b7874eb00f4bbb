//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package toolrouter manages tool router sessions: remotely scoped,
// MCP-addressable views over a user's toolkits. Sessions are stateless on
// the SDK side; all state lives remotely and a session can be rehydrated
// from its id alone.
package toolrouter

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tools"
)

// ToolkitConfig binds one toolkit into a session. Slug may be a glob
// pattern; patterns expand against nothing locally and are passed through,
// but must be syntactically valid.
type ToolkitConfig struct {
	Slug string
	// Disabled excludes the toolkit instead of including it.
	Disabled bool
	// AuthConfigID pins which auth config connections of this toolkit use.
	AuthConfigID string
	// ConnectedAccountID pins an existing account instead of letting the
	// session manage the connection.
	ConnectedAccountID string
}

// WorkbenchConfig sets the execution thresholds of the session workbench.
type WorkbenchConfig struct {
	SyncExecutionTimeout int
	MaxConcurrency       int
}

// Config declares the shape of a new router session.
type Config struct {
	Toolkits []ToolkitConfig
	Tags     []string
	// ManuallyManageConnections stops the session from initiating
	// connections on its own; callers drive Authorize explicitly.
	ManuallyManageConnections bool
	Workbench                 *WorkbenchConfig
}

func (c Config) validate() error {
	for _, tk := range c.Toolkits {
		if tk.Slug == "" {
			return sdkerrors.NewValidationError("toolkit config with empty slug")
		}
		if !doublestar.ValidatePattern(tk.Slug) {
			return sdkerrors.NewValidationError("invalid toolkit pattern %q", tk.Slug)
		}
		if tk.Disabled && (tk.AuthConfigID != "" || tk.ConnectedAccountID != "") {
			return sdkerrors.NewValidationError(
				"toolkit %s is disabled but carries auth bindings", tk.Slug)
		}
	}
	if c.Workbench != nil {
		if c.Workbench.SyncExecutionTimeout < 0 || c.Workbench.MaxConcurrency < 0 {
			return sdkerrors.NewValidationError("workbench thresholds must not be negative")
		}
	}
	return nil
}

func (c Config) toWire(userID string) client.RouterSessionCreateRequest {
	req := client.RouterSessionCreateRequest{
		UserID:                    userID,
		Tags:                      c.Tags,
		ManuallyManageConnections: c.ManuallyManageConnections,
	}
	for _, tk := range c.Toolkits {
		req.Toolkits = append(req.Toolkits, client.RouterToolkitConfig{
			Slug:               strings.ToLower(tk.Slug),
			Enabled:            !tk.Disabled,
			AuthConfigID:       tk.AuthConfigID,
			ConnectedAccountID: tk.ConnectedAccountID,
		})
	}
	if c.Workbench != nil {
		req.Workbench = &client.RouterWorkbenchConfig{
			SyncExecutionTimeout: c.Workbench.SyncExecutionTimeout,
			MaxConcurrency:       c.Workbench.MaxConcurrency,
		}
	}
	return req
}

// Manager creates and rehydrates router sessions.
type Manager struct {
	client   *client.Client
	registry *tools.Registry
}

// NewManager creates the session manager. The registry provides tool
// resolution and provider wrapping for Session.Tools.
func NewManager(c *client.Client, registry *tools.Registry) (*Manager, error) {
	if c == nil {
		return nil, sdkerrors.NewConfigurationError("tool router requires a client")
	}
	if registry == nil {
		return nil, sdkerrors.NewConfigurationError("tool router requires a tool registry")
	}
	return &Manager{client: c, registry: registry}, nil
}

// Create validates and normalizes cfg, creates the remote session and
// returns its local view.
func (m *Manager) Create(ctx context.Context, userID string, cfg Config) (*Session, error) {
	if userID == "" {
		return nil, sdkerrors.NewValidationError("user id must not be empty")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	wire, err := m.client.ToolRouter.CreateSession(ctx, cfg.toWire(userID))
	if err != nil {
		return nil, err
	}
	return m.session(wire, userID), nil
}

// Use rehydrates an existing session from its id. The returned view is
// structurally identical to one returned by Create.
func (m *Manager) Use(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, sdkerrors.NewValidationError("session id must not be empty")
	}
	wire, err := m.client.ToolRouter.RetrieveSession(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("tool router session", id).WithCause(err)
		}
		return nil, err
	}
	return m.session(wire, ""), nil
}

func (m *Manager) session(wire *client.RouterSession, userID string) *Session {
	return &Session{
		ID:        wire.SessionID,
		UserID:    userID,
		MCPServer: wire.MCPServer,
		toolSlugs: wire.Tools,
		client:    m.client,
		registry:  m.registry,
	}
}
