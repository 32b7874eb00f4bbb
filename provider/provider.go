//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package provider defines the seam between the tool registry and the
// framework-specific shape tools are handed out in. A provider turns the
// platform's Tool value into whatever the downstream framework consumes,
// for example OpenAI chat-completion tool params.
package provider

import (
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// Provider is the base contract every provider implements. The two
// capability variants below extend it; IsAgentic discriminates which one a
// given provider is.
type Provider interface {
	// Name identifies the provider, e.g. "openai".
	Name() string
	// IsAgentic reports whether wrapped tools carry their own bound
	// execution closure.
	IsAgentic() bool
}

// NonAgentic providers wrap tools into pure schema presentations with no
// execution capability bound in. The wrapped values are framework specific,
// so the contract is expressed over any; concrete providers expose typed
// accessors alongside.
type NonAgentic interface {
	Provider

	WrapTool(t tool.Tool) (any, error)
	WrapTools(ts []tool.Tool) (any, error)
}

// Agentic providers bind an execute closure into each wrapped tool, letting
// the downstream framework invoke tools without going back through the
// top-level API.
type Agentic interface {
	Provider

	WrapTool(t tool.Tool, execute tool.ExecuteFn) (any, error)
	WrapTools(ts []tool.Tool, execute tool.ExecuteFn) (any, error)
}
