package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "github.com", cfg.Host)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 80, cfg.WrapWidth)
	assert.False(t, cfg.RESTOnly)
	assert.True(t, cfg.IsDotCom())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghpr.yml")
	require.NoError(t, os.WriteFile(path, []byte("host: github.example.com\npage_size: 50\nrest_only: true\n"), 0o644))

	t.Setenv("GHPR_PAGE_SIZE", "25")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// File beats defaults, environment beats the file.
	assert.Equal(t, "github.example.com", cfg.Host)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.RESTOnly)
	assert.Equal(t, "origin", cfg.Remote)
	assert.False(t, cfg.IsDotCom())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
