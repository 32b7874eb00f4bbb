//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package tools

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/internal/schema"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// CustomToolkitSlug is the reserved toolkit slug of custom tools not backed
// by any real toolkit. Such tools have no credentials to proxy requests
// with.
const CustomToolkitSlug = "custom"

// CustomToolContext is handed to a custom tool's execute function on every
// invocation.
type CustomToolContext struct {
	// ConnectionState is the auth material of the resolved connected
	// account, nil when the tool is not bound to a real toolkit or no
	// account was resolved.
	ConnectionState map[string]any
	// ExecuteToolRequest proxies an arbitrary HTTP call through the resolved
	// connected account's credentials. Calling it on a tool without a real
	// toolkit fails immediately.
	ExecuteToolRequest func(ctx context.Context, req client.ProxyRequest) (*client.ProxyResponse, error)
}

// CustomToolFn is the execute function of a custom tool. Arguments arrive
// validated against the tool's declared input schema.
type CustomToolFn func(ctx context.Context, arguments map[string]any, tctx CustomToolContext) (tool.ExecuteResponse, error)

// CustomToolOptions declares a custom tool.
type CustomToolOptions struct {
	Slug        string
	Name        string
	Description string
	// ToolkitSlug binds the tool to a real toolkit so executions can resolve
	// connected accounts and proxy requests. Empty means no toolkit.
	ToolkitSlug string
	// InputParameters is the declared argument schema. CreateCustomTool
	// derives it from the input type when nil.
	InputParameters *tool.Schema
}

type customTool struct {
	tool    tool.Tool
	execute CustomToolFn
}

// customRegistry is the in-process custom tool store, keyed by lowercased
// slug. Registration is a startup-time activity; the lock keeps concurrent
// registration race free, with last write winning.
type customRegistry struct {
	mu    sync.RWMutex
	tools map[string]*customTool
}

func newCustomRegistry() *customRegistry {
	return &customRegistry{tools: make(map[string]*customTool)}
}

func (r *customRegistry) register(t *customTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[strings.ToLower(t.tool.Slug)] = t
}

func (r *customRegistry) lookup(slug string) (*customTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[strings.ToLower(slug)]
	return t, ok
}

// matching returns registered tools matching the query. Slug-addressed
// queries keep the order of the requested slugs; toolkit queries return
// matches sorted by slug.
func (r *customRegistry) matching(params ListParams) []*customTool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*customTool
	switch {
	case len(params.Tools) > 0:
		for _, slug := range params.Tools {
			if t, ok := r.tools[strings.ToLower(slug)]; ok {
				out = append(out, t)
			}
		}
	case len(params.Toolkits) > 0:
		for _, t := range r.tools {
			if matchesToolkit(t.tool.ToolkitSlug(), params.Toolkits) {
				out = append(out, t)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].tool.Slug < out[j].tool.Slug
		})
	}
	return out
}

// RegisterCustomTool registers an in-process tool with an explicit input
// schema. The tool becomes visible to lookups and lists immediately and
// shadows any remote tool with the same slug.
func (r *Registry) RegisterCustomTool(opts CustomToolOptions, fn CustomToolFn) (tool.Tool, error) {
	if opts.Slug == "" {
		return tool.Tool{}, sdkerrors.NewValidationError("custom tool slug must not be empty")
	}
	if fn == nil {
		return tool.Tool{}, sdkerrors.NewValidationError("custom tool %s has no execute function", opts.Slug)
	}
	toolkitSlug := opts.ToolkitSlug
	if toolkitSlug == "" {
		toolkitSlug = CustomToolkitSlug
	}
	name := opts.Name
	if name == "" {
		name = opts.Slug
	}

	t := tool.Tool{
		Slug:            opts.Slug,
		Name:            name,
		Description:     opts.Description,
		InputParameters: opts.InputParameters,
		Toolkit:         &tool.Toolkit{Slug: toolkitSlug, Name: toolkitSlug},
	}
	r.custom.register(&customTool{tool: t, execute: fn})
	return t, nil
}

// CreateCustomTool registers an in-process tool whose input schema is derived
// from the struct type I via its json tags.
func CreateCustomTool[I any](r *Registry, opts CustomToolOptions, fn CustomToolFn) (tool.Tool, error) {
	if opts.InputParameters == nil {
		opts.InputParameters = schema.Generate(reflect.TypeOf((*I)(nil)).Elem())
	}
	return r.RegisterCustomTool(opts, fn)
}
