package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigDefaults(t *testing.T) {
	config, err := loadConfig("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, config.Zoom)
	assert.Equal(t, 800, config.ExportWidth)
	assert.Equal(t, 600, config.ExportHeight)
	assert.True(t, config.Confirmations)
	assert.Equal(t, 300*time.Millisecond, config.Debounce())
	assert.Equal(t, "", config.SaveDirectory)
}

func TestConfigFileAndAliases(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	rc := writeFile(t, dir, ".halfplanerc", "# board settings\n"+
		"zoom = 25\n"+
		"savedir = "+out+"\n"+
		"confirm = false\n"+
		"width = 1024\n")

	config, err := loadConfig(rc, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 25.0, config.Zoom)
	assert.Equal(t, out, config.SaveDirectory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, 1024, config.ExportWidth)
}

func TestConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	rc := writeFile(t, dir, ".halfplanerc", "zoom = 25\n")
	t.Setenv("HALFPLANE_ZOOM", "60")

	config, err := loadConfig(rc, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 60.0, config.Zoom)
}

func TestConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "HALFPLANE_PAN_STEP=32\n")
	t.Cleanup(func() { os.Unsetenv("HALFPLANE_PAN_STEP") })

	config, err := loadConfig("", env, nil)
	require.NoError(t, err)
	assert.Equal(t, 32, config.PanStep)
}

func TestConfigFlagsWin(t *testing.T) {
	dir := t.TempDir()
	rc := writeFile(t, dir, ".halfplanerc", "export_width = 640\nexport_height = 480\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("width", 800, "")
	flags.Int("height", 600, "")
	require.NoError(t, flags.Parse([]string{"--width=1200"}))

	config, err := loadConfig(rc, "", flags)
	require.NoError(t, err)
	assert.Equal(t, 1200, config.ExportWidth)
	assert.Equal(t, 480, config.ExportHeight)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		rc      string
		wantErr string
	}{
		{"zoom too large", "zoom = 500\n", "zoom must be 100 or less"},
		{"zoom too small", "zoom = 2\n", "zoom must be 10 or greater"},
		{"tiny export", "export_width = 10\n", "export_width"},
		{"negative debounce", "debounce = -1\n", "debounce_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := writeFile(t, t.TempDir(), ".halfplanerc", tt.rc)
			_, err := loadConfig(rc, "", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetSavePath(t *testing.T) {
	assert.Equal(t, "a.png", (&Config{}).GetSavePath("a.png"))

	dir := filepath.Join(t.TempDir(), "exports")
	config := &Config{SaveDirectory: dir}
	assert.Equal(t, filepath.Join(dir, "a.png"), config.GetSavePath("a.png"))
	assert.DirExists(t, dir)
}
