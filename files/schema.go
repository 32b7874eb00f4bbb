//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package files

import (
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// TransformFileProperties rewrites every file_uploadable property of the
// schema tree to the normalized path presentation:
//
//	{format: "path", type: "string", file_uploadable: true}
//
// so downstream consumers advertise upload-capable parameters uniformly as
// file-path fields, independent of the property's original shape. The
// rewrite is idempotent and returns a new tree.
func TransformFileProperties(s *tool.Schema) *tool.Schema {
	if s == nil {
		return nil
	}
	out := s.Clone()
	rewriteFileProperties(out)
	return out
}

func rewriteFileProperties(s *tool.Schema) {
	if s == nil {
		return
	}
	for name, prop := range s.Properties {
		if prop == nil {
			continue
		}
		if prop.FileUploadable {
			s.Properties[name] = &tool.Schema{
				Type:           "string",
				Format:         "path",
				FileUploadable: true,
				Description:    prop.Description,
			}
			continue
		}
		rewriteFileProperties(prop)
	}
	rewriteFileProperties(s.Items)
}

// DefaultSchemaModifier is the schema modifier applied to every tool before
// caller modifiers run. It normalizes the advertised shape of uploadable
// input parameters.
func DefaultSchemaModifier(ctx tool.ModifierContext, t tool.Tool) (tool.Tool, error) {
	out := t.Clone()
	out.InputParameters = TransformFileProperties(out.InputParameters)
	return out, nil
}
