package krpcgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.x")
	require.NoError(t, os.WriteFile(path, []byte(pingSpec), 0o644))

	mod, err := ModuleFromFile(path)
	require.NoError(t, err)
	assert.Len(t, mod, 2)
}

func TestModuleFromFile_MissingFile(t *testing.T) {
	_, err := ModuleFromFile(filepath.Join(t.TempDir(), "missing.x"))
	assert.Error(t, err)
}

func TestGenerate_EndToEnd(t *testing.T) {
	specDir := t.TempDir()
	specPath := filepath.Join(specDir, "ping.x")
	require.NoError(t, os.WriteFile(specPath, []byte(pingSpec), 0o644))

	outDir := t.TempDir()
	opts := NewGeneratorOptions()
	opts.SpecificationPath = specPath
	opts.OutputPath = outDir

	require.NoError(t, Generate(opts))

	data, err := os.ReadFile(filepath.Join(outDir, "Makefile"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "PING_PROG_client.o")
}

func TestGenerate_RejectsInvalidOptions(t *testing.T) {
	opts := NewGeneratorOptions()
	opts.VLALimit = 0
	assert.Error(t, Generate(opts))
}
