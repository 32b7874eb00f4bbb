//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package tool

import (
	"reflect"

	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

// ModifierContext identifies the tool a modifier is being applied to.
type ModifierContext struct {
	// ToolSlug is the slug of the tool being modified.
	ToolSlug string
	// ToolkitSlug is the slug of the owning toolkit, "" when none.
	ToolkitSlug string
}

// SchemaModifier transforms a tool's schema before it is handed to a
// provider. The returned tool fully replaces the input (not merged), which
// intentionally lets callers strip fields.
type SchemaModifier func(ctx ModifierContext, t Tool) (Tool, error)

// BeforeExecuteModifier transforms the execution params before the tool
// runs. The returned params fully replace the input.
type BeforeExecuteModifier func(ctx ModifierContext, params ExecuteParams) (ExecuteParams, error)

// AfterExecuteModifier transforms the execution response after the tool ran.
// The returned response fully replaces the input.
type AfterExecuteModifier func(ctx ModifierContext, resp ExecuteResponse) (ExecuteResponse, error)

// ExecuteModifiers bundles the caller-supplied execution hooks. Nil fields
// mean absent.
type ExecuteModifiers struct {
	BeforeExecute BeforeExecuteModifier
	AfterExecute  AfterExecuteModifier
}

// ApplySchemaModifier runs modifier over each tool in order and returns the
// modified list. A nil modifier returns the input unchanged.
func ApplySchemaModifier(modifier SchemaModifier, items []Tool) ([]Tool, error) {
	if modifier == nil {
		return items, nil
	}
	out := make([]Tool, 0, len(items))
	for _, t := range items {
		modified, err := modifier(ModifierContext{ToolSlug: t.Slug, ToolkitSlug: t.ToolkitSlug()}, t)
		if err != nil {
			return nil, err
		}
		out = append(out, modified)
	}
	return out, nil
}

// CoerceExecuteModifiers validates a dynamically supplied modifier value.
// Accepted shapes: nil, *ExecuteModifiers, ExecuteModifiers. Anything else
// (including non-function hook fields smuggled in via any) is rejected with
// a validation error. Entry points taking loosely typed options use this
// before the pipeline runs.
func CoerceExecuteModifiers(v any) (*ExecuteModifiers, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case *ExecuteModifiers:
		return m, nil
	case ExecuteModifiers:
		return &m, nil
	default:
		return nil, sdkerrors.NewValidationError(
			"invalid execute modifiers: expected *tool.ExecuteModifiers, got %s",
			reflect.TypeOf(v).String(),
		).WithFix("pass a *tool.ExecuteModifiers with BeforeExecute/AfterExecute function fields")
	}
}
