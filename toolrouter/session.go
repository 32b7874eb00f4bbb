//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package toolrouter

import (
	"context"
	"net/http"
	"sync"

	"github.com/panjf2000/ants/v2"
	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/connectedaccounts"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
	"trpc.group/trpc-go/trpc-composio-go/tools"
)

// toolFetchConcurrency bounds the parallel tool lookups in Session.Tools.
const toolFetchConcurrency = 8

var mcpClientInfo = mcp.Implementation{
	Name:    "trpc-composio-go",
	Version: "1.0.0",
}

// Session is the local view of one remote router session.
type Session struct {
	// ID is the remote session id.
	ID string
	// UserID is the user the session was created for. Empty on rehydrated
	// sessions; pass the user explicitly where it matters.
	UserID string
	// MCPServer describes the MCP endpoint the session exposes, nil when the
	// backend did not attach one.
	MCPServer *client.RouterMCPServer

	toolSlugs []string
	client    *client.Client
	registry  *tools.Registry
}

// Tools resolves the session's tool slugs into full tools and wraps them via
// the active provider, mirroring the registry's retrieval contract. Lookups
// run concurrently on a bounded pool.
func (s *Session) Tools(ctx context.Context, opts tools.GetOptions) (any, error) {
	resolved, err := s.fetchTools(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.registry.WrapTools(s.UserID, opts, resolved)
}

// RawTools resolves the session's tool slugs without provider wrapping.
func (s *Session) RawTools(ctx context.Context, opts tools.GetOptions) ([]tool.Tool, error) {
	return s.fetchTools(ctx, opts)
}

func (s *Session) fetchTools(ctx context.Context, opts tools.GetOptions) ([]tool.Tool, error) {
	pool, err := ants.NewPool(toolFetchConcurrency)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	resolved := make([]tool.Tool, len(s.toolSlugs))
	errs := make([]error, len(s.toolSlugs))
	for i, slug := range s.toolSlugs {
		i, slug := i, slug
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			resolved[i], errs[i] = s.registry.RawGet(ctx, slug, opts.SchemaModifier)
		}); submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// AuthorizeOptions tune the per-toolkit link operation.
type AuthorizeOptions struct {
	CallbackURL string
}

// Authorize triggers the session's link operation for one toolkit and
// returns the resulting connection attempt. Callers complete it with
// WaitForConnection.
func (s *Session) Authorize(ctx context.Context, toolkitSlug string, opts *AuthorizeOptions) (*connectedaccounts.ConnectionRequest, error) {
	if toolkitSlug == "" {
		return nil, sdkerrors.NewValidationError("toolkit slug must not be empty")
	}
	req := client.RouterLinkRequest{ToolkitSlug: toolkitSlug}
	if opts != nil {
		req.CallbackURL = opts.CallbackURL
	}
	resp, err := s.client.ToolRouter.Link(ctx, s.ID, req)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("toolkit", toolkitSlug).WithCause(err)
		}
		return nil, err
	}
	return connectedaccounts.NewConnectionRequest(
		s.client, resp.ConnectedAccountID, connectedaccounts.Status(resp.Status), resp.RedirectURL), nil
}

// Toolkits fetches a page of per-toolkit connection state within the
// session.
func (s *Session) Toolkits(ctx context.Context, limit int, cursor string) (*client.RouterToolkitStatusList, error) {
	if limit < 0 {
		return nil, sdkerrors.NewValidationError("limit must not be negative, got %d", limit)
	}
	return s.client.ToolRouter.Toolkits(ctx, s.ID, limit, cursor)
}

// Connect dials the session's MCP endpoint and initializes the protocol
// session. The caller owns the returned connector and must Close it.
func (s *Session) Connect(ctx context.Context) (mcp.Connector, error) {
	if s.MCPServer == nil || s.MCPServer.URL == "" {
		return nil, sdkerrors.NewConfigurationError("session %s exposes no MCP server", s.ID)
	}

	var options []mcp.ClientOption
	if len(s.MCPServer.Headers) > 0 {
		headers := http.Header{}
		for k, v := range s.MCPServer.Headers {
			headers.Set(k, v)
		}
		options = append(options, mcp.WithHTTPHeaders(headers))
	}

	var (
		conn mcp.Connector
		err  error
	)
	switch s.MCPServer.Type {
	case "sse":
		conn, err = mcp.NewSSEClient(s.MCPServer.URL, mcpClientInfo, options...)
	default:
		conn, err = mcp.NewClient(s.MCPServer.URL, mcpClientInfo, options...)
	}
	if err != nil {
		return nil, err
	}

	if _, err := conn.Initialize(ctx, &mcp.InitializeRequest{}); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
