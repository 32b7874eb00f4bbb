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
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/internal/schema"
	"trpc.group/trpc-go/trpc-composio-go/log"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

var tracer = otel.Tracer("trpc.group/trpc-go/trpc-composio-go/tools")

// Execute runs a tool by slug, custom or remote. Every failure inside the
// pipeline surfaces as a single execution error carrying the original cause;
// callers wanting specifics inspect the cause chain.
func (r *Registry) Execute(ctx context.Context, slug string, params tool.ExecuteParams, modifiers *tool.ExecuteModifiers) (tool.ExecuteResponse, error) {
	if r.custom == nil {
		return tool.ExecuteResponse{}, sdkerrors.NewConfigurationError("tool registry not initialized")
	}

	ctx, span := tracer.Start(ctx, "tools.Execute",
		trace.WithAttributes(attribute.String("tool.slug", slug)))
	defer span.End()

	resp, err := r.executeOnce(ctx, slug, params, modifiers)
	if err != nil {
		span.RecordError(err)
		return tool.ExecuteResponse{}, sdkerrors.NewExecutionError(slug, err).
			WithMetadata("body", params.Arguments)
	}
	return resp, nil
}

func (r *Registry) executeOnce(ctx context.Context, slug string, params tool.ExecuteParams, modifiers *tool.ExecuteModifiers) (tool.ExecuteResponse, error) {
	if ct, ok := r.custom.lookup(slug); ok {
		return r.executeCustom(ctx, ct, params, modifiers)
	}
	return r.executeRemote(ctx, slug, params, modifiers)
}

func (r *Registry) executeCustom(ctx context.Context, ct *customTool, params tool.ExecuteParams, modifiers *tool.ExecuteModifiers) (tool.ExecuteResponse, error) {
	toolkitSlug := ct.tool.ToolkitSlug()
	mctx := tool.ModifierContext{ToolSlug: ct.tool.Slug, ToolkitSlug: toolkitSlug}

	var err error
	if modifiers != nil && modifiers.BeforeExecute != nil {
		params, err = modifiers.BeforeExecute(mctx, params)
		if err != nil {
			return tool.ExecuteResponse{}, err
		}
	}

	if violations := schema.ValidateArguments(ct.tool.InputParameters, params.Arguments); len(violations) > 0 {
		return tool.ExecuteResponse{}, sdkerrors.NewValidationError(
			"invalid arguments for %s: %s", ct.tool.Slug, strings.Join(violations, "; "))
	}

	tctx := CustomToolContext{}
	connectedAccountID := params.ConnectedAccountID
	if toolkitSlug != CustomToolkitSlug {
		account, err := r.resolveAccount(ctx, params.UserID, toolkitSlug, connectedAccountID)
		if err != nil {
			return tool.ExecuteResponse{}, err
		}
		connectedAccountID = account.ID
		if account.State != nil {
			tctx.ConnectionState = account.State.Val
		}
	}
	tctx.ExecuteToolRequest = func(ctx context.Context, req client.ProxyRequest) (*client.ProxyResponse, error) {
		if toolkitSlug == CustomToolkitSlug {
			return nil, sdkerrors.NewConfigurationError(
				"custom tool %s is not bound to a toolkit; there are no credentials to proxy the request with", ct.tool.Slug)
		}
		if req.ConnectedAccountID == "" {
			req.ConnectedAccountID = connectedAccountID
		}
		return r.client.Tools.Proxy(ctx, req)
	}

	resp, err := ct.execute(ctx, params.Arguments, tctx)
	if err != nil {
		return tool.ExecuteResponse{}, err
	}
	if modifiers != nil && modifiers.AfterExecute != nil {
		return modifiers.AfterExecute(mctx, resp)
	}
	return resp, nil
}

func (r *Registry) executeRemote(ctx context.Context, slug string, params tool.ExecuteParams, modifiers *tool.ExecuteModifiers) (tool.ExecuteResponse, error) {
	w, err := r.client.Tools.Retrieve(ctx, slug)
	if err != nil {
		if client.IsNotFound(err) {
			return tool.ExecuteResponse{}, sdkerrors.NewNotFoundError("tool", slug).WithCause(err)
		}
		return tool.ExecuteResponse{}, err
	}
	t := toolFromWire(*w)
	toolkitSlug := t.ToolkitSlug()
	mctx := tool.ModifierContext{ToolSlug: t.Slug, ToolkitSlug: toolkitSlug}

	// Uploads run before the caller's beforeExecute so any caller logic sees
	// the already-replaced file descriptors.
	hydrated, err := r.hydrator.HydrateFiles(ctx, params.Arguments, t.InputParameters, t.Slug, toolkitSlug)
	if err != nil {
		return tool.ExecuteResponse{}, err
	}
	if args, ok := hydrated.(map[string]any); ok {
		params.Arguments = args
	}
	if modifiers != nil && modifiers.BeforeExecute != nil {
		params, err = modifiers.BeforeExecute(mctx, params)
		if err != nil {
			return tool.ExecuteResponse{}, err
		}
	}

	if params.ConnectedAccountID == "" && !t.NoAuth {
		account, err := r.resolveAccount(ctx, params.UserID, toolkitSlug, "")
		if err != nil {
			return tool.ExecuteResponse{}, err
		}
		params.ConnectedAccountID = account.ID
	}

	version := params.Version
	if version == "" {
		version = r.client.ToolkitVersion(toolkitSlug)
	}
	wireResp, err := r.client.Tools.Execute(ctx, t.Slug, client.ToolExecuteRequest{
		Arguments:          params.Arguments,
		UserID:             params.UserID,
		ConnectedAccountID: params.ConnectedAccountID,
		CustomAuthParams:   params.CustomAuthParams,
		Version:            version,
		AllowTracing:       params.AllowTracing,
		Text:               params.Text,
	})
	if err != nil {
		return tool.ExecuteResponse{}, err
	}

	resp := tool.ExecuteResponse{
		Data:        wireResp.Data,
		Error:       wireResp.Error,
		Successful:  wireResp.Successful,
		LogID:       wireResp.LogID,
		SessionInfo: wireResp.SessionInfo,
	}
	// Downloads run before the caller's afterExecute, mirroring the upload
	// ordering on the way in.
	if data, ok := r.hydrator.HydrateDownloads(ctx, resp.Data, t.Slug).(map[string]any); ok {
		resp.Data = data
	}
	if modifiers != nil && modifiers.AfterExecute != nil {
		return modifiers.AfterExecute(mctx, resp)
	}
	return resp, nil
}

// resolveAccount picks the connected account an execution runs under. An
// explicit id wins. Otherwise the user's active accounts for the toolkit are
// listed; zero accounts fail, multiple accounts use the first with a logged
// warning.
func (r *Registry) resolveAccount(ctx context.Context, userID, toolkitSlug, explicitID string) (*client.ConnectedAccount, error) {
	if explicitID != "" {
		return r.client.ConnectedAccounts.Retrieve(ctx, explicitID)
	}
	if userID == "" {
		return nil, sdkerrors.NewValidationError(
			"cannot resolve a connected account for toolkit %s without a user id", toolkitSlug)
	}
	page, err := r.client.ConnectedAccounts.List(ctx, client.ConnectedAccountListQuery{
		UserIDs:      []string{userID},
		ToolkitSlugs: []string{toolkitSlug},
		Statuses:     []string{"ACTIVE"},
	})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, sdkerrors.NewNotFoundError("connected account", userID+"/"+toolkitSlug).
			WithFix("connect the user to the toolkit first, or pass ConnectedAccountID explicitly")
	}
	if len(page.Items) > 1 {
		log.Warnf("user %s has %d connected accounts for toolkit %s, using the first (%s)",
			userID, len(page.Items), toolkitSlug, page.Items[0].ID)
	}
	return &page.Items[0], nil
}
