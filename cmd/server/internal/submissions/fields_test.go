package submissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackwave-community/platform-api/internal/types"
)

func testFormFields() []types.SubmissionFormField {
	return []types.SubmissionFormField{
		{Key: "pitch", Label: "Pitch", Type: types.FieldTypeString, Required: true, Enabled: true},
		{Key: "teamSize", Label: "Team size", Type: types.FieldTypeNumber, Enabled: true},
		{Key: "openSource", Label: "Open source", Type: types.FieldTypeBoolean, Enabled: true},
		{Key: "repoUrl", Label: "Repository", Type: types.FieldTypeURL, Enabled: true},
		{Key: "legacy", Label: "Legacy", Type: types.FieldTypeString, Required: true, Enabled: false},
	}
}

func TestCompileFieldSchema(t *testing.T) {
	schema, err := CompileFieldSchema(testFormFields())
	require.NoError(t, err)

	t.Run("ValidBag", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":      "we make things",
			"teamSize":   float64(3),
			"openSource": true,
			"repoUrl":    "https://example.com/repo",
		})

		assert.Nil(t, fields)
	})

	t.Run("OptionalFieldsMayBeOmitted", func(t *testing.T) {
		fields := schema.Validate(map[string]any{"pitch": "we make things"})

		assert.Nil(t, fields)
	})

	t.Run("OptionalFieldsMayBeNull", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":    "we make things",
			"teamSize": nil,
		})

		assert.Nil(t, fields)
	})

	t.Run("MissingRequiredNamesTheLabel", func(t *testing.T) {
		fields := schema.Validate(map[string]any{"teamSize": float64(3)})

		require.Contains(t, fields, "pitch")
		assert.Contains(t, fields["pitch"], "Pitch")
	})

	t.Run("EmptyRequiredStringRejected", func(t *testing.T) {
		fields := schema.Validate(map[string]any{"pitch": ""})

		assert.Contains(t, fields, "pitch")
	})

	t.Run("DisabledRequiredNotEnforced", func(t *testing.T) {
		fields := schema.Validate(map[string]any{"pitch": "we make things"})

		assert.NotContains(t, fields, "legacy")
	})

	t.Run("DisabledKeyRejectedLikeUnknown", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":  "we make things",
			"legacy": "stale answer",
		})

		assert.NotNil(t, fields)
	})

	t.Run("UnknownKeyRejected", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":   "we make things",
			"surpise": "not in the form",
		})

		assert.NotNil(t, fields)
	})

	t.Run("WrongTypeNumber", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":    "we make things",
			"teamSize": "three",
		})

		require.Contains(t, fields, "teamSize")
		assert.Contains(t, fields["teamSize"], "Team size")
	})

	t.Run("WrongTypeBoolean", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":      "we make things",
			"openSource": "yes",
		})

		assert.Contains(t, fields, "openSource")
	})

	t.Run("MalformedURL", func(t *testing.T) {
		fields := schema.Validate(map[string]any{
			"pitch":   "we make things",
			"repoUrl": "not a url at all\n",
		})

		assert.Contains(t, fields, "repoUrl")
	})

	t.Run("NilBagOnlyFailsRequired", func(t *testing.T) {
		fields := schema.Validate(nil)

		assert.Contains(t, fields, "pitch")
		assert.NotContains(t, fields, "teamSize")
	})
}

func TestFieldLookup(t *testing.T) {
	schema, err := CompileFieldSchema(testFormFields())
	require.NoError(t, err)

	t.Run("Enabled", func(t *testing.T) {
		field, ok := schema.Field("pitch")

		require.True(t, ok)
		assert.Equal(t, "Pitch", field.Label)
	})

	t.Run("DisabledInvisible", func(t *testing.T) {
		_, ok := schema.Field("legacy")

		assert.False(t, ok)
	})
}

func TestCompileFieldSchemaEmptyForm(t *testing.T) {
	schema, err := CompileFieldSchema(nil)
	require.NoError(t, err)

	t.Run("EmptyBag", func(t *testing.T) {
		assert.Nil(t, schema.Validate(map[string]any{}))
	})

	t.Run("AnyKeyRejected", func(t *testing.T) {
		assert.NotNil(t, schema.Validate(map[string]any{"anything": 1}))
	})
}
