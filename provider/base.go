//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package provider

import (
	"context"
	"sync"

	"trpc.group/trpc-go/trpc-composio-go/log"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// BaseProvider carries the late-injected execute function shared by both
// provider variants. Providers embed it; the tool registry completes the
// wiring by calling SetExecuteToolFn during its own construction. This keeps
// the provider free of any compile-time dependency on the registry.
type BaseProvider struct {
	mu        sync.Mutex
	executeFn tool.ExecuteFn
}

// SetExecuteToolFn injects the registry's execute capability. The first call
// wins; repeated calls are ignored so a provider instance can be shared
// across facade clones safely.
func (p *BaseProvider) SetExecuteToolFn(fn tool.ExecuteFn) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.executeFn != nil {
		log.Debugf("provider execute function already set, keeping the existing one")
		return
	}
	p.executeFn = fn
}

// ExecuteTool runs a tool through the injected execute function. Calling it
// before injection is a programming error and fails with a configuration
// error.
func (p *BaseProvider) ExecuteTool(
	ctx context.Context,
	slug string,
	params tool.ExecuteParams,
	modifiers *tool.ExecuteModifiers,
) (tool.ExecuteResponse, error) {
	p.mu.Lock()
	fn := p.executeFn
	p.mu.Unlock()
	if fn == nil {
		return tool.ExecuteResponse{}, sdkerrors.NewConfigurationError(
			"tool execute function not set on provider; construct the SDK before executing tools through it")
	}
	return fn(ctx, slug, params, modifiers)
}
