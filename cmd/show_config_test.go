package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderSettings(t *testing.T) {
	out, err := renderSettings(map[string]any{
		"transform": map[string]any{"strategy": "uppercase"},
		"version":   1,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "transform:\n    strategy: uppercase\n")
	assert.Contains(t, out, "version: 1\n")
}

func TestConfigCmd_PrintsEffectiveSettings(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newConfigCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--log-file", filepath.Join(t.TempDir(), "filepipe.log")})

	require.NoError(t, cmd.Execute())

	var settings map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &settings))

	assert.Contains(t, settings, "transform")
	assert.Contains(t, settings, "preview")
	assert.Contains(t, settings, "log")

	preview, ok := settings["preview"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, preview["lines"])
}
