package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportVisualTXT(t *testing.T) {
	m := castAll(t, newTestModel(t), "x >= 0", "y - 2 < 0")
	path := filepath.Join(t.TempDir(), "board.txt")

	require.NoError(t, m.exportVisualTXT(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 38)
	assert.Contains(t, string(data), "▲")
}

func TestExportPNG(t *testing.T) {
	m := castAll(t, newTestModel(t), "x + y - 1 > 0")
	path := filepath.Join(t.TempDir(), "board.png")

	require.NoError(t, m.exportPNG(path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 608, img.Bounds().Dy())
}

func TestExportFromFileMode(t *testing.T) {
	m := castAll(t, newTestModel(t), "x >= 0")
	dir := t.TempDir()
	m.config.SaveDirectory = dir

	m = press(t, m, "S")
	assert.Equal(t, ModeFileInput, m.mode)
	m = press(t, m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.FileExists(t, filepath.Join(dir, defaultTXTName))

	m = press(t, m, "S", "enter")
	assert.Equal(t, ModeConfirm, m.mode, "existing files need confirmation")
	m = press(t, m, "y")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Contains(t, m.successMessage, defaultTXTName)
}

func TestRunExport(t *testing.T) {
	config := testConfig()
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, runExport(config, path, []string{"x >= 0", "y >= 0", "x + y - 4 <= 0"}, true))
	assert.FileExists(t, path)

	err := runExport(config, path, []string{"banana"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banana")
}
