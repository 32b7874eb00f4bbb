package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-composio-go/tool"
)

func TestProviderIdentity(t *testing.T) {
	p := New()
	assert.Equal(t, "openai", p.Name())
	assert.False(t, p.IsAgentic())
}

func TestToolParam(t *testing.T) {
	p := New()
	param, err := p.ToolParam(tool.Tool{
		Slug:        "GITHUB_GET_REPO",
		Description: "Fetch a repository",
		InputParameters: &tool.Schema{
			Type:     "object",
			Required: []string{"owner"},
			Properties: map[string]*tool.Schema{
				"owner": {Type: "string"},
				"repo":  {Type: "string"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "GITHUB_GET_REPO", param.Function.Name)
	assert.Equal(t, "Fetch a repository", param.Function.Description.Value)
	assert.Equal(t, "object", param.Function.Parameters["type"])

	props, ok := param.Function.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "owner")
	assert.Contains(t, props, "repo")
}

func TestToolParamNilSchema(t *testing.T) {
	p := New()
	param, err := p.ToolParam(tool.Tool{Slug: "NOOP"})
	require.NoError(t, err)
	assert.Equal(t, "object", param.Function.Parameters["type"])
}

func TestToolParamsOrder(t *testing.T) {
	p := New()
	params, err := p.ToolParams([]tool.Tool{{Slug: "A"}, {Slug: "B"}})
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "A", params[0].Function.Name)
	assert.Equal(t, "B", params[1].Function.Name)
}
