//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package tool

import "context"

// ExecuteParams is the request envelope for one tool execution.
type ExecuteParams struct {
	// Arguments are the tool call arguments.
	Arguments map[string]any `json:"arguments,omitempty"`
	// UserID identifies the user on whose behalf the tool runs.
	UserID string `json:"userId,omitempty"`
	// ConnectedAccountID pins the execution to a specific connected
	// account. When empty, one is resolved automatically from the user and
	// the tool's toolkit.
	ConnectedAccountID string `json:"connectedAccountId,omitempty"`
	// CustomAuthParams carries caller-supplied auth material overriding the
	// connected account credentials.
	CustomAuthParams map[string]any `json:"customAuthParams,omitempty"`
	// Version pins the tool version used for this call.
	Version string `json:"version,omitempty"`
	// AllowTracing opts this call into remote tracing.
	AllowTracing bool `json:"allowTracing,omitempty"`
	// Text is an optional natural-language instruction the backend may use
	// to fill in arguments.
	Text string `json:"text,omitempty"`
}

// ExecuteResponse is the response envelope of one tool execution.
//
// Successful == true implies Error == nil; the backend owns that contract and
// the SDK does not enforce it.
type ExecuteResponse struct {
	// Data is the structured tool result.
	Data map[string]any `json:"data"`
	// Error is the failure description, nil on success.
	Error *string `json:"error"`
	// Successful reports whether the tool call succeeded.
	Successful bool `json:"successful"`
	// LogID identifies the backend execution log entry.
	LogID string `json:"logId,omitempty"`
	// SessionInfo carries optional session details attached by the backend.
	SessionInfo map[string]any `json:"sessionInfo,omitempty"`
}

// ExecuteFn executes a tool identified by slug with the given params and
// optional modifiers. It is the narrow, function-shaped contract through
// which providers call back into the execution pipeline without depending on
// its implementation.
type ExecuteFn func(ctx context.Context, slug string, params ExecuteParams, modifiers *ExecuteModifiers) (ExecuteResponse, error)
