//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package openai implements the default non-agentic provider. Wrapped tools
// come out as OpenAI chat-completion tool params ready to pass to the
// openai-go client.
package openai

import (
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-composio-go/provider"
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// Provider wraps tools into openai.ChatCompletionToolParam values.
type Provider struct {
	provider.BaseProvider
}

var _ provider.NonAgentic = (*Provider)(nil)

// New creates the OpenAI provider.
func New() *Provider {
	return &Provider{}
}

// Name implements provider.Provider.
func (p *Provider) Name() string { return "openai" }

// IsAgentic implements provider.Provider.
func (p *Provider) IsAgentic() bool { return false }

// WrapTool implements provider.NonAgentic.
func (p *Provider) WrapTool(t tool.Tool) (any, error) {
	return p.ToolParam(t)
}

// WrapTools implements provider.NonAgentic.
func (p *Provider) WrapTools(ts []tool.Tool) (any, error) {
	return p.ToolParams(ts)
}

// ToolParam is the typed form of WrapTool.
func (p *Provider) ToolParam(t tool.Tool) (openai.ChatCompletionToolParam, error) {
	parameters := shared.FunctionParameters{"type": "object", "properties": map[string]any{}}
	if t.InputParameters != nil {
		schemaBytes, err := json.Marshal(t.InputParameters)
		if err != nil {
			return openai.ChatCompletionToolParam{}, fmt.Errorf("failed to marshal schema for %s: %w", t.Slug, err)
		}
		if err := json.Unmarshal(schemaBytes, &parameters); err != nil {
			return openai.ChatCompletionToolParam{}, fmt.Errorf("failed to convert schema for %s: %w", t.Slug, err)
		}
	}
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        t.Slug,
			Description: openai.String(t.Description),
			Parameters:  parameters,
		},
	}, nil
}

// ToolParams is the typed form of WrapTools, preserving order.
func (p *Provider) ToolParams(ts []tool.Tool) ([]openai.ChatCompletionToolParam, error) {
	result := make([]openai.ChatCompletionToolParam, 0, len(ts))
	for _, t := range ts {
		param, err := p.ToolParam(t)
		if err != nil {
			return nil, err
		}
		result = append(result, param)
	}
	return result, nil
}
