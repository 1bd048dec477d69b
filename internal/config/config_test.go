package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesRootToLeaf(t *testing.T) {
	root := t.TempDir()
	leaf := filepath.Join(root, "project")
	require.NoError(t, os.Mkdir(leaf, 0o755))

	rootConf := `{"concurrency": 4, "httpRetryMax": 2}`
	leafConf := `{"concurrency": 16}`

	require.NoError(t, os.WriteFile(filepath.Join(root, jsonFileName), []byte(rootConf), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(leaf, jsonFileName), []byte(leafConf), 0o644))

	cfg, err := Load(leaf)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Concurrency, "expected leaf config to override concurrency to 16")
	assert.Equal(t, 2, cfg.HTTPRetryMax, "expected root config's httpRetryMax of 2 to survive")
}

func TestLoadWithNoConfigFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Zero(t, cfg.Concurrency)
	assert.Empty(t, cfg.Repositories)
}
