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
	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

// slugModeLimit is the page size forced for slug-addressed lookups. They are
// assumed small and must complete in a single page.
const slugModeLimit = 9999

// ListParams selects tools from the catalog. The filter modes are mutually
// exclusive: exactly one of Tools, Toolkits, Tags, Search or AuthConfigIDs
// must drive the query. Scopes refine a single-toolkit query only.
type ListParams struct {
	// Tools addresses tools by explicit slug. Never combined with Toolkits.
	Tools []string
	// Toolkits restricts results to the given toolkits.
	Toolkits []string
	// Scopes restricts a single-toolkit query to tools needing the given
	// OAuth scopes.
	Scopes []string
	// Tags restricts results to tools carrying all given tags.
	Tags []string
	// Search is a free-text catalog search.
	Search string
	// AuthConfigIDs restricts results to tools usable with the given auth
	// configs.
	AuthConfigIDs []string

	Limit  int
	Cursor string
}

func (p ListParams) validate() error {
	if len(p.Tools) > 0 && len(p.Toolkits) > 0 {
		return sdkerrors.NewValidationError(
			"cannot filter by both tool slugs and toolkits; pick one addressing mode").
			WithFix("use Tools to address tools by slug, or Toolkits to browse a toolkit")
	}
	if len(p.Scopes) > 0 && len(p.Toolkits) != 1 {
		return sdkerrors.NewValidationError(
			"scopes filtering requires exactly one toolkit, got %d", len(p.Toolkits))
	}
	if len(p.Tools) == 0 && len(p.Toolkits) == 0 && len(p.Tags) == 0 &&
		p.Search == "" && len(p.AuthConfigIDs) == 0 {
		return sdkerrors.NewValidationError(
			"empty tool filter: set one of Tools, Toolkits, Tags, Search or AuthConfigIDs")
	}
	if p.Limit < 0 {
		return sdkerrors.NewValidationError("limit must not be negative, got %d", p.Limit)
	}
	return nil
}

// slugMode reports whether the query addresses tools by explicit slug.
func (p ListParams) slugMode() bool { return len(p.Tools) > 0 }

func (p ListParams) toQuery() client.ToolListQuery {
	limit := p.Limit
	if p.slugMode() {
		limit = slugModeLimit
	}
	return client.ToolListQuery{
		ToolSlugs:     p.Tools,
		ToolkitSlugs:  p.Toolkits,
		Tags:          p.Tags,
		Search:        p.Search,
		Scopes:        p.Scopes,
		AuthConfigIDs: p.AuthConfigIDs,
		Limit:         limit,
		Cursor:        p.Cursor,
	}
}
