package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTool() Tool {
	return Tool{
		Slug:        "GMAIL_SEND_EMAIL",
		Name:        "Send Email",
		Description: "Send an email via Gmail",
		Tags:        []string{"email", "important"},
		Toolkit:     &Toolkit{Slug: "gmail", Name: "Gmail"},
		InputParameters: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"to":         {Type: "string", Format: "email"},
				"body":       {Type: "string"},
				"attachment": {Type: "object", FileUploadable: true},
			},
			Required: []string{"to", "body"},
		},
	}
}

func TestToolClone(t *testing.T) {
	orig := sampleTool()
	clone := orig.Clone()

	require.Equal(t, orig, clone)

	// Mutating the clone must not touch the original.
	clone.InputParameters.Properties["to"].Type = "number"
	clone.Tags[0] = "changed"
	clone.Toolkit.Slug = "changed"

	assert.Equal(t, "string", orig.InputParameters.Properties["to"].Type)
	assert.Equal(t, "email", orig.Tags[0])
	assert.Equal(t, "gmail", orig.Toolkit.Slug)
}

func TestSchemaKeepsUnknownKeywords(t *testing.T) {
	in := []byte(`{"type":"string","title":"Repo name","minLength":1,"examples":["octocat/hello"]}`)

	var s Schema
	require.NoError(t, json.Unmarshal(in, &s))
	assert.Equal(t, "string", s.Type)
	assert.Equal(t, "Repo name", s.Extra["title"])
	assert.Equal(t, float64(1), s.Extra["minLength"])

	round, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.Contains(t, string(round), `"title":"Repo name"`)
	assert.Contains(t, string(round), `"minLength":1`)
	assert.Contains(t, string(round), `"examples":["octocat/hello"]`)
}

func TestSchemaUnknownKeywordsNested(t *testing.T) {
	in := []byte(`{"type":"object","properties":{"repo":{"type":"string","pattern":"^[\\w-]+/[\\w-]+$"}}}`)

	var s Schema
	require.NoError(t, json.Unmarshal(in, &s))
	require.Contains(t, s.Properties, "repo")
	assert.Equal(t, `^[\w-]+/[\w-]+$`, s.Properties["repo"].Extra["pattern"])

	round, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.Contains(t, string(round), `"pattern"`)
}

func TestSchemaFixedFieldsWinOverExtra(t *testing.T) {
	s := Schema{Type: "string", Extra: map[string]any{"type": "number", "title": "x"}}

	round, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.Contains(t, string(round), `"type":"string"`)
	assert.Contains(t, string(round), `"title":"x"`)
}

func TestSchemaCloneCopiesExtra(t *testing.T) {
	orig := &Schema{Type: "string", Extra: map[string]any{"title": "Repo name"}}
	clone := orig.Clone()

	require.Equal(t, orig, clone)
	clone.Extra["title"] = "changed"
	assert.Equal(t, "Repo name", orig.Extra["title"])
}

func TestSchemaCloneNil(t *testing.T) {
	var s *Schema
	assert.Nil(t, s.Clone())
}

func TestToolkitSlug(t *testing.T) {
	assert.Equal(t, "gmail", sampleTool().ToolkitSlug())
	assert.Equal(t, "", Tool{Slug: "X"}.ToolkitSlug())
}

func TestApplySchemaModifierIdentity(t *testing.T) {
	orig := sampleTool()
	identity := func(ctx ModifierContext, tl Tool) (Tool, error) { return tl, nil }

	out, err := ApplySchemaModifier(identity, []Tool{orig})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, orig, out[0])
}

func TestApplySchemaModifierContext(t *testing.T) {
	var got ModifierContext
	mod := func(ctx ModifierContext, tl Tool) (Tool, error) {
		got = ctx
		tl.Description = "rewritten"
		return tl, nil
	}

	out, err := ApplySchemaModifier(mod, []Tool{sampleTool()})
	require.NoError(t, err)
	assert.Equal(t, "GMAIL_SEND_EMAIL", got.ToolSlug)
	assert.Equal(t, "gmail", got.ToolkitSlug)
	assert.Equal(t, "rewritten", out[0].Description)
}

func TestApplySchemaModifierNil(t *testing.T) {
	items := []Tool{sampleTool()}
	out, err := ApplySchemaModifier(nil, items)
	require.NoError(t, err)
	assert.Equal(t, items, out)
}

func TestCoerceExecuteModifiers(t *testing.T) {
	mods := &ExecuteModifiers{}

	got, err := CoerceExecuteModifiers(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = CoerceExecuteModifiers(mods)
	require.NoError(t, err)
	assert.Same(t, mods, got)

	got, err = CoerceExecuteModifiers(ExecuteModifiers{})
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = CoerceExecuteModifiers("not a modifier")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid execute modifiers")
}
