//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package composio

import (
	"context"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/connectedaccounts"
	"trpc.group/trpc-go/trpc-composio-go/log"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

// Toolkits exposes the toolkit catalog plus the one-call authorization
// convenience.
type Toolkits struct {
	client   *client.Client
	accounts *connectedaccounts.Manager
}

// Get fetches a toolkit by slug.
func (t *Toolkits) Get(ctx context.Context, slug string) (*client.Toolkit, error) {
	tk, err := t.client.Toolkits.Retrieve(ctx, slug)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("toolkit", slug).WithCause(err)
		}
		return nil, err
	}
	return tk, nil
}

// List fetches a page of toolkits.
func (t *Toolkits) List(ctx context.Context, query client.ToolkitListQuery) (*client.ToolkitList, error) {
	return t.client.Toolkits.List(ctx, query)
}

// Categories fetches the toolkit category list.
func (t *Toolkits) Categories(ctx context.Context) (*client.ToolkitCategoryList, error) {
	return t.client.Toolkits.RetrieveCategories(ctx)
}

// Authorize connects a user to a toolkit in one call: it resolves an auth
// config for the toolkit, creating a composio-managed one when the toolkit
// supports it, then initiates the connection. A toolkit with no auth configs
// and no managed auth schemes fails with a not-found error before any
// account is created.
func (t *Toolkits) Authorize(ctx context.Context, userID, toolkitSlug string) (*connectedaccounts.ConnectionRequest, error) {
	if userID == "" {
		return nil, sdkerrors.NewValidationError("user id must not be empty")
	}
	if toolkitSlug == "" {
		return nil, sdkerrors.NewValidationError("toolkit slug must not be empty")
	}

	authConfigID, err := t.resolveAuthConfig(ctx, toolkitSlug)
	if err != nil {
		return nil, err
	}
	return t.accounts.Initiate(ctx, userID, authConfigID, nil)
}

func (t *Toolkits) resolveAuthConfig(ctx context.Context, toolkitSlug string) (string, error) {
	page, err := t.client.AuthConfigs.List(ctx, client.AuthConfigListQuery{ToolkitSlug: toolkitSlug})
	if err != nil {
		return "", err
	}
	for _, ac := range page.Items {
		if !ac.IsDisabled {
			return ac.ID, nil
		}
	}

	tk, err := t.Get(ctx, toolkitSlug)
	if err != nil {
		return "", err
	}
	if len(tk.ComposioManagedAuthSchemes) == 0 {
		return "", sdkerrors.NewNotFoundError("auth config for toolkit", toolkitSlug).
			WithFix("create an auth config for " + toolkitSlug + " in the dashboard first")
	}

	scheme := tk.ComposioManagedAuthSchemes[0]
	log.Debugf("creating composio-managed auth config for toolkit %s using scheme %s", toolkitSlug, scheme)
	created, err := t.client.AuthConfigs.Create(ctx, client.AuthConfigCreateRequest{
		Toolkit: client.WireToolkit{Slug: toolkitSlug},
		AuthConfig: &client.AuthConfigSpec{
			Type:       "use_composio_managed_auth",
			AuthScheme: scheme,
		},
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
