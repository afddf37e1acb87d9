package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDBPath, cfg.Database.Path)
	assert.Equal(t, DefaultSchemaVersion, cfg.Database.SchemaVersion)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Modules)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	body := `
database:
  path: /var/lib/profiles/registry.sqlite
  schema_version: 4
log:
  level: debug
  format: json
modules:
  - sound
  - xmit
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/profiles/registry.sqlite", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Database.SchemaVersion)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"sound", "xmit"}, cfg.Modules)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative version": "database:\n  schema_version: -1\n",
		"bad level":        "log:\n  level: loud\n",
		"bad format":       "log:\n  format: xml\n",
		"empty module":     "modules: [xmit, '']\n",
		"not yaml":         "database: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadYAML_MissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
