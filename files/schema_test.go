package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-composio-go/tool"
)

func TestTransformFileProperties(t *testing.T) {
	in := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"attachment": {
				Type:           "object",
				Description:    "file to send",
				FileUploadable: true,
				Properties: map[string]*tool.Schema{
					"name": {Type: "string"},
				},
			},
			"subject": {Type: "string"},
			"nested": {
				Type: "object",
				Properties: map[string]*tool.Schema{
					"avatar": {Type: "string", FileUploadable: true},
				},
			},
			"items": {
				Type: "array",
				Items: &tool.Schema{
					Type: "object",
					Properties: map[string]*tool.Schema{
						"photo": {Type: "object", FileUploadable: true},
					},
				},
			},
		},
	}

	out := TransformFileProperties(in)

	attachment := out.Properties["attachment"]
	assert.Equal(t, "string", attachment.Type)
	assert.Equal(t, "path", attachment.Format)
	assert.True(t, attachment.FileUploadable)
	assert.Equal(t, "file to send", attachment.Description)
	assert.Nil(t, attachment.Properties, "original object shape is dropped")

	assert.Equal(t, "string", out.Properties["subject"].Type)
	assert.Empty(t, out.Properties["subject"].Format)

	assert.Equal(t, "path", out.Properties["nested"].Properties["avatar"].Format)
	assert.Equal(t, "path", out.Properties["items"].Items.Properties["photo"].Format)

	// Input untouched.
	assert.Equal(t, "object", in.Properties["attachment"].Type)
}

func TestTransformFilePropertiesIdempotent(t *testing.T) {
	in := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"file": {Type: "object", FileUploadable: true, Description: "d"},
		},
	}

	once := TransformFileProperties(in)
	twice := TransformFileProperties(once)
	assert.Equal(t, once, twice)
}

func TestTransformFilePropertiesNil(t *testing.T) {
	assert.Nil(t, TransformFileProperties(nil))
}

func TestDefaultSchemaModifier(t *testing.T) {
	in := tool.Tool{
		Slug: "GMAIL_SEND_EMAIL",
		InputParameters: &tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"attachment": {Type: "object", FileUploadable: true},
			},
		},
	}

	out, err := DefaultSchemaModifier(tool.ModifierContext{ToolSlug: in.Slug, ToolkitSlug: "gmail"}, in)
	require.NoError(t, err)
	assert.Equal(t, "path", out.InputParameters.Properties["attachment"].Format)
	assert.Equal(t, "object", in.InputParameters.Properties["attachment"].Type, "input tool untouched")
}
