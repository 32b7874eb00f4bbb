//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package tool defines the tool and schema value types shared across the SDK.
package tool

import "encoding/json"

// Toolkit references the toolkit a tool belongs to.
type Toolkit struct {
	// Slug is the unique identifier of the toolkit, e.g. "github".
	Slug string `json:"slug"`
	// Name is the display name of the toolkit.
	Name string `json:"name,omitempty"`
	// Logo is the URL of the toolkit logo.
	Logo string `json:"logo,omitempty"`
}

// Tool describes a single invocable tool.
//
// A Tool is an immutable value once retrieved. Schema modifiers never mutate
// a Tool in place; they return a new value (see Clone).
type Tool struct {
	// Slug is the unique identifier of the tool, e.g. "GMAIL_SEND_EMAIL".
	Slug string `json:"slug"`
	// Name is the display name of the tool.
	Name string `json:"name"`
	// Description explains the tool's purpose.
	Description string `json:"description,omitempty"`
	// InputParameters is the JSON schema of the tool arguments.
	InputParameters *Schema `json:"inputParameters,omitempty"`
	// OutputParameters is the JSON schema of the tool result.
	OutputParameters *Schema `json:"outputParameters,omitempty"`
	// Tags are free-form labels attached to the tool.
	Tags []string `json:"tags,omitempty"`
	// Toolkit references the owning toolkit, if any.
	Toolkit *Toolkit `json:"toolkit,omitempty"`
	// Version is the tool version pinned at retrieval time.
	Version string `json:"version,omitempty"`
	// NoAuth is true when the tool requires no connected account.
	NoAuth bool `json:"noAuth,omitempty"`
	// Scopes are the OAuth scopes the tool requires.
	Scopes []string `json:"scopes,omitempty"`
}

// ToolkitSlug returns the slug of the owning toolkit, or "" when the tool has
// none.
func (t Tool) ToolkitSlug() string {
	if t.Toolkit == nil {
		return ""
	}
	return t.Toolkit.Slug
}

// Clone returns a deep copy of the tool. Modifier pipelines operate on clones
// so the original value stays untouched.
func (t Tool) Clone() Tool {
	out := t
	out.InputParameters = t.InputParameters.Clone()
	out.OutputParameters = t.OutputParameters.Clone()
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	if t.Scopes != nil {
		out.Scopes = append([]string(nil), t.Scopes...)
	}
	if t.Toolkit != nil {
		tk := *t.Toolkit
		out.Toolkit = &tk
	}
	return out
}

// Schema represents the structure of JSON Schema used for defining tool
// arguments and responses. It follows the JSON Schema standard extended with
// the platform's file annotations.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the arguments, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the schema of array items.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether properties not defined in
	// Properties are allowed.
	AdditionalProperties any    `json:"additionalProperties,omitempty"`
	Enum                 []any  `json:"enum,omitempty"`
	Format               string `json:"format,omitempty"`
	Default              any    `json:"default,omitempty"`
	// FileUploadable marks a property whose runtime value is a local file
	// reference that must be uploaded before execution.
	FileUploadable bool `json:"file_uploadable,omitempty"`
	// FileDownloadable marks a property whose runtime value is a remote
	// file reference that may be downloaded after execution.
	FileDownloadable bool `json:"file_downloadable,omitempty"`
	// Extra holds JSON Schema keywords outside the fixed field set, such as
	// title, minLength or oneOf. They survive decode and re-encode unchanged
	// so catalog schemas stay lossless through the SDK.
	Extra map[string]any `json:"-"`
}

// schemaFields mirrors Schema for JSON coding without recursing into the
// custom marshal methods.
type schemaFields Schema

// schemaKnownKeys lists the JSON keys covered by Schema's fixed fields.
var schemaKnownKeys = []string{
	"type", "description", "required", "properties", "items",
	"additionalProperties", "enum", "format", "default",
	"file_uploadable", "file_downloadable",
}

// UnmarshalJSON decodes the fixed fields and collects every other keyword
// into Extra.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var fields schemaFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range schemaKnownKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		fields.Extra = make(map[string]any, len(raw))
		for key, val := range raw {
			var v any
			if err := json.Unmarshal(val, &v); err != nil {
				return err
			}
			fields.Extra[key] = v
		}
	}
	*s = Schema(fields)
	return nil
}

// MarshalJSON emits the fixed fields merged with Extra. Fixed fields win on a
// key collision.
func (s *Schema) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(schemaFields(*s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return data, nil
	}
	merged := make(map[string]json.RawMessage, len(s.Extra))
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, val := range s.Extra {
		if _, ok := merged[key]; ok {
			continue
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		merged[key] = raw
	}
	return json.Marshal(merged)
}

// Clone returns a deep copy of the schema tree. Returns nil for a nil schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Enum != nil {
		out.Enum = append([]any(nil), s.Enum...)
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	if s.Extra != nil {
		out.Extra = make(map[string]any, len(s.Extra))
		for key, val := range s.Extra {
			out.Extra[key] = val
		}
	}
	out.Items = s.Items.Clone()
	return &out
}
