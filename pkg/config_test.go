package genoscrub

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.OffspringLimit)
	assert.Equal(t, 2, cfg.BlameThreshold)
	assert.Equal(t, 50, cfg.MaxIterations)
	assert.Equal(t, 1, cfg.DoubleSize)
	assert.Equal(t, 50, cfg.ChunkWidth)
	assert.True(t, cfg.ImputeMissing)
}

func TestConfigValidate(t *testing.T) {
	for name, mod := range map[string]func(*Config){
		"iterations": func(c *Config) { c.MaxIterations = 0 },
		"offspring":  func(c *Config) { c.OffspringLimit = -1 },
		"blame":      func(c *Config) { c.BlameThreshold = -1 },
		"double":     func(c *Config) { c.DoubleSize = -1 },
		"chunk":      func(c *Config) { c.ChunkWidth = 0 },
	} {
		cfg := DefaultConfig()
		mod(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genoscrub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigLayers(t *testing.T) {
	path := writeYAML(t, "genotypes: geno.txt.gz\nmaxIterations: 10\nblameThreshold: 3\nimputeMissing: false\n")
	t.Setenv("GENOSCRUB_MAX_ITERATIONS", "20")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "geno.txt.gz", cfg.GenotypePath)
	assert.Equal(t, 3, cfg.BlameThreshold)
	assert.Equal(t, 20, cfg.MaxIterations)
	assert.False(t, cfg.ImputeMissing)
	assert.Equal(t, DefaultOffspringLimit, cfg.OffspringLimit)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeYAML(t, "maxIterations: 0\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeYAML(t, "maxIterations: [\n"))
	assert.Error(t, err)
}

func TestConfigFlagsOverrideOnlyWhenSet(t *testing.T) {
	t.Setenv("GENOSCRUB_MAX_ITERATIONS", "20")
	t.Setenv("GENOSCRUB_BLAME_THRESHOLD", "4")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var f ConfigFlags
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-iter", "9", "-g", "in.txt", "-debug"}))

	cfg, err := f.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxIterations)
	assert.Equal(t, 4, cfg.BlameThreshold)
	assert.Equal(t, "in.txt", cfg.GenotypePath)
	assert.True(t, cfg.Debug)
}
