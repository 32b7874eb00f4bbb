//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package tools implements the tool registry: catalog queries, in-process
// custom tools and the execution pipeline.
package tools

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/files"
	"trpc.group/trpc-go/trpc-composio-go/provider"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// executeSetter is the late-binding hook providers expose through
// provider.BaseProvider.
type executeSetter interface {
	SetExecuteToolFn(tool.ExecuteFn)
}

// Registry resolves tools from the remote catalog and the in-process custom
// store, and runs the execution pipeline.
type Registry struct {
	client   *client.Client
	provider provider.Provider
	hydrator *files.Hydrator
	custom   *customRegistry
}

// NewRegistry creates the registry and completes the provider wiring by
// injecting the registry's execute capability into it.
func NewRegistry(c *client.Client, p provider.Provider, h *files.Hydrator) (*Registry, error) {
	if c == nil {
		return nil, sdkerrors.NewConfigurationError("tools registry requires a client")
	}
	if h == nil {
		h = files.NewHydrator(c)
	}
	r := &Registry{
		client:   c,
		provider: p,
		hydrator: h,
		custom:   newCustomRegistry(),
	}
	if setter, ok := p.(executeSetter); ok {
		setter.SetExecuteToolFn(r.Execute)
	}
	return r, nil
}

func toolFromWire(w client.Tool) tool.Tool {
	t := tool.Tool{
		Slug:             w.Slug,
		Name:             w.Name,
		Description:      w.Description,
		InputParameters:  w.InputParameters,
		OutputParameters: w.OutputParameters,
		Tags:             w.Tags,
		Version:          w.Version,
		NoAuth:           w.NoAuth,
		Scopes:           w.Scopes,
	}
	if w.Toolkit != nil {
		t.Toolkit = &tool.Toolkit{Slug: w.Toolkit.Slug, Name: w.Toolkit.Name, Logo: w.Toolkit.Logo}
	}
	return t
}

// matchesToolkit reports whether slug matches any of the given toolkit
// patterns. Patterns support glob syntax, so "google-*" selects every Google
// toolkit.
func matchesToolkit(slug string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(slug)); err == nil && ok {
			return true
		}
	}
	return false
}

// applyModifiers runs the default file-annotation rewrite and then the
// caller's schema modifier over each tool. The modifier's return value fully
// replaces the tool.
func applyModifiers(ts []tool.Tool, modifier tool.SchemaModifier) ([]tool.Tool, error) {
	out := make([]tool.Tool, 0, len(ts))
	for _, t := range ts {
		mctx := tool.ModifierContext{ToolSlug: t.Slug, ToolkitSlug: t.ToolkitSlug()}
		modified, err := files.DefaultSchemaModifier(mctx, t)
		if err != nil {
			return nil, err
		}
		if modifier != nil {
			modified, err = modifier(mctx, modified)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, modified)
	}
	return out, nil
}

// RawList fetches tools matching params: remote tools first, matching custom
// tools appended after them. Custom tools are additive and never
// deduplicated against remote tools by slug. The optional modifier runs over
// every tool after the default file-annotation rewrite.
func (r *Registry) RawList(ctx context.Context, params ListParams, modifier tool.SchemaModifier) ([]tool.Tool, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	page, err := r.client.Tools.List(ctx, params.toQuery())
	if err != nil {
		return nil, err
	}
	combined := make([]tool.Tool, 0, len(page.Items))
	for _, w := range page.Items {
		combined = append(combined, toolFromWire(w))
	}
	for _, ct := range r.custom.matching(params) {
		combined = append(combined, ct.tool.Clone())
	}
	return applyModifiers(combined, modifier)
}

// RawGet fetches a single tool by slug. The custom registry is consulted
// first, so a custom tool shadows a remote tool of the same slug. A remote
// miss surfaces as a typed not-found error.
func (r *Registry) RawGet(ctx context.Context, slug string, modifier tool.SchemaModifier) (tool.Tool, error) {
	if ct, ok := r.custom.lookup(slug); ok {
		ts, err := applyModifiers([]tool.Tool{ct.tool.Clone()}, modifier)
		if err != nil {
			return tool.Tool{}, err
		}
		return ts[0], nil
	}

	w, err := r.client.Tools.Retrieve(ctx, slug)
	if err != nil {
		if client.IsNotFound(err) {
			return tool.Tool{}, sdkerrors.NewNotFoundError("tool", slug).WithCause(err)
		}
		return tool.Tool{}, err
	}
	ts, err := applyModifiers([]tool.Tool{toolFromWire(*w)}, modifier)
	if err != nil {
		return tool.Tool{}, err
	}
	return ts[0], nil
}

// GetOptions tune the provider-wrapped retrieval paths.
type GetOptions struct {
	// SchemaModifier runs over each tool's schema before wrapping.
	SchemaModifier tool.SchemaModifier
	// Modifiers are bound into the execute closure of agentic wrapping.
	Modifiers *tool.ExecuteModifiers
}

// Get fetches one tool by slug and wraps it via the active provider. For an
// agentic provider the wrapped tool carries an execute closure bound to
// userID.
func (r *Registry) Get(ctx context.Context, userID, slug string, opts GetOptions) (any, error) {
	t, err := r.RawGet(ctx, slug, opts.SchemaModifier)
	if err != nil {
		return nil, err
	}
	return r.wrap(userID, opts, t)
}

// GetByFilters fetches tools matching params and wraps them via the active
// provider.
func (r *Registry) GetByFilters(ctx context.Context, userID string, params ListParams, opts GetOptions) (any, error) {
	ts, err := r.RawList(ctx, params, opts.SchemaModifier)
	if err != nil {
		return nil, err
	}
	return r.wrapAll(userID, opts, ts)
}

// WrapTools wraps already-resolved tools via the active provider, binding a
// user-scoped execute closure for agentic providers. The tool router uses it
// after fetching a session's tools itself.
func (r *Registry) WrapTools(userID string, opts GetOptions, ts []tool.Tool) (any, error) {
	return r.wrapAll(userID, opts, ts)
}

func (r *Registry) wrap(userID string, opts GetOptions, t tool.Tool) (any, error) {
	switch p := r.provider.(type) {
	case provider.Agentic:
		return p.WrapTool(t, r.boundExecuteFn(userID, opts.Modifiers))
	case provider.NonAgentic:
		return p.WrapTool(t)
	default:
		return nil, sdkerrors.NewConfigurationError("no provider configured for tool wrapping")
	}
}

func (r *Registry) wrapAll(userID string, opts GetOptions, ts []tool.Tool) (any, error) {
	switch p := r.provider.(type) {
	case provider.Agentic:
		return p.WrapTools(ts, r.boundExecuteFn(userID, opts.Modifiers))
	case provider.NonAgentic:
		return p.WrapTools(ts)
	default:
		return nil, sdkerrors.NewConfigurationError("no provider configured for tool wrapping")
	}
}

// boundExecuteFn builds the user-bound execute callback handed to agentic
// providers. Caller modifiers on the individual call take precedence over
// the ones bound at wrap time.
func (r *Registry) boundExecuteFn(userID string, bound *tool.ExecuteModifiers) tool.ExecuteFn {
	return func(ctx context.Context, slug string, params tool.ExecuteParams, modifiers *tool.ExecuteModifiers) (tool.ExecuteResponse, error) {
		if params.UserID == "" {
			params.UserID = userID
		}
		if modifiers == nil {
			modifiers = bound
		}
		return r.Execute(ctx, slug, params, modifiers)
	}
}

// Proxy performs a raw HTTP call through a connected account's credentials.
func (r *Registry) Proxy(ctx context.Context, req client.ProxyRequest) (*client.ProxyResponse, error) {
	return r.client.Tools.Proxy(ctx, req)
}

// RetrieveEnum fetches the slugs of all known tools.
func (r *Registry) RetrieveEnum(ctx context.Context) ([]string, error) {
	return r.client.Tools.RetrieveEnum(ctx)
}

// GetInput asks the backend to derive tool arguments from natural language.
func (r *Registry) GetInput(ctx context.Context, slug string, req client.ToolInputRequest) (*client.ToolInputResponse, error) {
	return r.client.Tools.GetInput(ctx, slug, req)
}
