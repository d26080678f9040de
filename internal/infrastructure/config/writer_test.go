package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalTOML_SectionOrder(t *testing.T) {
	data, err := MarshalTOML(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	sections := []string{"[backend]", "[window]", "[webview]", "[accelerators.bindings]", "[permissions]", "[logging]", "[debug]"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing %s", s)
		assert.Greater(t, idx, last, "%s out of order", s)
		last = idx
	}
	assert.Contains(t, out, `toggle_borderless = 'ctrl+shift+b'`)
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	err := WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml"))
	assert.Error(t, err)
}

func TestGenerateSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), schemaFileName)
	require.NoError(t, GenerateSchemaFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var schema struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "appplatform configuration", schema.Title)
	for _, key := range []string{"backend", "window", "webview", "accelerators", "permissions", "logging", "debug"} {
		assert.Contains(t, schema.Properties, key)
	}
	assert.Contains(t, string(schema.Properties["backend"]), "webkitgtk")
}
