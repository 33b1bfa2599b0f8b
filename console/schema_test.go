package console_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/proclog/console"
)

func TestSchema(t *testing.T) {
	t.Parallel()

	s := console.Schema()
	assert.Equal(t, console.SchemaID, s.ID)
	assert.Equal(t, "object", s.Type)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var doc struct {
		Properties map[string]struct {
			Type       string          `json:"type"`
			Enum       []string        `json:"enum"`
			Default    json.RawMessage `json:"default"`
			Properties map[string]any  `json:"properties"`
		} `json:"properties"`
	}

	require.NoError(t, json.Unmarshal(data, &doc))

	tcs := map[string]struct {
		typ  string
		enum []string
		def  string
	}{
		"mode":          {typ: "string", enum: []string{"classic", "colored", "docker"}, def: `"classic"`},
		"level":         {typ: "string", enum: []string{"none", "trace", "debug", "info", "warn", "error"}, def: `"info"`},
		"details":       {typ: "string", enum: []string{"default", "light", "detailed"}, def: `"default"`},
		"scheme":        {typ: "string", enum: []string{"dark", "light"}, def: `"dark"`},
		"tagsMaxLength": {typ: "integer", def: "20"},
		"showHierarchy": {typ: "boolean", def: "false"},
		"showTimestamp": {typ: "boolean", def: "true"},
		"neutralColors": {typ: "boolean", def: "false"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, ok := doc.Properties[name]
			require.True(t, ok)
			assert.Equal(t, tc.typ, p.Type)
			assert.Equal(t, tc.enum, p.Enum)
			assert.JSONEq(t, tc.def, string(p.Default))
		})
	}

	styles, ok := doc.Properties["styles"]
	require.True(t, ok)
	assert.Equal(t, "object", styles.Type)

	for _, key := range []string{"timestamp", "level", "serviceName", "message", "scheme"} {
		assert.Contains(t, styles.Properties, key)
	}
}
