package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-composio-go/tool"
)

type sendEmailInput struct {
	To         string   `json:"to" description:"Recipient address"`
	Body       string   `json:"body"`
	CC         []string `json:"cc,omitempty"`
	Attachment string   `json:"attachment,omitempty" file:"uploadable"`
	Priority   *int     `json:"priority,omitempty"`
	internal   string   // unexported, skipped
	Skipped    string   `json:"-"`
}

func TestGenerateStruct(t *testing.T) {
	s := Generate(reflect.TypeOf(sendEmailInput{}))
	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)

	require.Contains(t, s.Properties, "to")
	assert.Equal(t, "string", s.Properties["to"].Type)
	assert.Equal(t, "Recipient address", s.Properties["to"].Description)

	require.Contains(t, s.Properties, "cc")
	assert.Equal(t, "array", s.Properties["cc"].Type)
	assert.Equal(t, "string", s.Properties["cc"].Items.Type)

	require.Contains(t, s.Properties, "attachment")
	assert.True(t, s.Properties["attachment"].FileUploadable)

	assert.NotContains(t, s.Properties, "internal")
	assert.NotContains(t, s.Properties, "Skipped")

	assert.ElementsMatch(t, []string{"to", "body"}, s.Required)
}

func TestGeneratePointerAndScalars(t *testing.T) {
	s := Generate(reflect.TypeOf(&sendEmailInput{}))
	assert.Equal(t, "object", s.Type)

	assert.Equal(t, "integer", Generate(reflect.TypeOf(0)).Type)
	assert.Equal(t, "number", Generate(reflect.TypeOf(0.5)).Type)
	assert.Equal(t, "boolean", Generate(reflect.TypeOf(true)).Type)
	assert.Equal(t, "object", Generate(nil).Type)
}

func TestGenerateNested(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	type outer struct {
		Items map[string]inner `json:"items"`
		One   inner            `json:"one"`
	}
	s := Generate(reflect.TypeOf(outer{}))
	require.Contains(t, s.Properties, "items")
	assert.Equal(t, "object", s.Properties["items"].Type)
	ap, ok := s.Properties["items"].AdditionalProperties.(*tool.Schema)
	require.True(t, ok)
	assert.Equal(t, "object", ap.Type)
	assert.Equal(t, "string", s.Properties["one"].Properties["name"].Type)
}

func TestValidateArguments(t *testing.T) {
	s := Generate(reflect.TypeOf(sendEmailInput{}))

	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"valid", map[string]any{"to": "a@b.c", "body": "hi"}, 0},
		{"missing required", map[string]any{"to": "a@b.c"}, 1},
		{"wrong type", map[string]any{"to": 42, "body": "hi"}, 1},
		{"json number for int", map[string]any{"to": "a@b.c", "body": "hi", "priority": 3.0}, 0},
		{"both missing and wrong", map[string]any{"to": 42}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ValidateArguments(s, tt.args), tt.want)
		})
	}
}

func TestValidateArgumentsNilSchema(t *testing.T) {
	assert.Nil(t, ValidateArguments(nil, map[string]any{"x": 1}))
}
