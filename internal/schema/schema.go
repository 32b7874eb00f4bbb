//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package schema derives tool.Schema trees from Go types. It backs the typed
// input declarations of custom tools.
package schema

import (
	"reflect"
	"strings"

	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// Generate generates a JSON schema from a reflect.Type. Struct fields honor
// `json` tags for naming and omitempty, a `description` tag for the property
// description, and a `file:"uploadable"` tag for the platform's upload
// annotation. Pointer fields and omitempty fields are optional; everything
// else is required.
func Generate(t reflect.Type) *tool.Schema {
	if t == nil {
		return &tool.Schema{Type: "object"}
	}
	if t.Kind() == reflect.Ptr {
		return Generate(t.Elem())
	}
	if t.Kind() != reflect.Struct {
		return fieldSchema(t)
	}

	s := &tool.Schema{
		Type:       "object",
		Properties: map[string]*tool.Schema{},
	}
	var required []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := parseJSONTag(field)
		if skip {
			continue
		}

		prop := fieldSchema(field.Type)
		if desc := field.Tag.Get("description"); desc != "" {
			prop.Description = desc
		}
		if field.Tag.Get("file") == "uploadable" {
			prop.FileUploadable = true
		}
		s.Properties[name] = prop

		if field.Type.Kind() != reflect.Ptr && !omitEmpty {
			required = append(required, name)
		}
	}
	if len(required) > 0 {
		s.Required = required
	}
	return s
}

func parseJSONTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	name = field.Name
	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return "", false, true
	}
	if jsonTag == "" {
		return name, false, false
	}
	if idx := strings.Index(jsonTag, ","); idx != -1 {
		if jsonTag[:idx] != "" {
			name = jsonTag[:idx]
		}
		omitEmpty = strings.Contains(jsonTag[idx:], "omitempty")
		return name, omitEmpty, false
	}
	return jsonTag, false, false
}

func fieldSchema(t reflect.Type) *tool.Schema {
	switch t.Kind() {
	case reflect.String:
		return &tool.Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &tool.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &tool.Schema{Type: "number"}
	case reflect.Bool:
		return &tool.Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &tool.Schema{Type: "array", Items: fieldSchema(t.Elem())}
	case reflect.Map:
		return &tool.Schema{Type: "object", AdditionalProperties: fieldSchema(t.Elem())}
	case reflect.Ptr:
		return fieldSchema(t.Elem())
	case reflect.Struct:
		return Generate(t)
	default:
		// Interfaces and anything else degrade to an untyped object.
		return &tool.Schema{Type: "object"}
	}
}

// ValidateArguments checks args against an object schema: every required
// property must be present and typed properties must hold a compatible JSON
// value. It returns the list of violations, empty when args conform. The
// check is shallow plus one level of recursion for object properties, which
// matches what the execution pipeline needs to fail fast with a useful
// message before invoking a custom tool.
func ValidateArguments(s *tool.Schema, args map[string]any) []string {
	if s == nil {
		return nil
	}
	var violations []string
	for _, req := range s.Required {
		if _, ok := args[req]; !ok {
			violations = append(violations, "missing required property: "+req)
		}
	}
	for name, prop := range s.Properties {
		value, ok := args[name]
		if !ok || value == nil || prop == nil {
			continue
		}
		if !valueMatches(prop.Type, value) {
			violations = append(violations, "property "+name+" is not of type "+prop.Type)
		}
	}
	return violations
}

func valueMatches(schemaType string, value any) bool {
	switch schemaType {
	case "string":
		_, ok := value.(string)
		return ok
	case "integer", "number":
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		return reflect.ValueOf(value).Kind() == reflect.Slice
	case "object":
		return reflect.ValueOf(value).Kind() == reflect.Map
	default:
		return true
	}
}
