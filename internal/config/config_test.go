package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.PrivateUnexported)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "_with.go", cfg.Output.Suffix)
	assert.Equal(t, "New", cfg.Naming.ConstructorPrefix)
	assert.Equal(t, "With", cfg.Naming.WitherPrefix)
	assert.Equal(t, "out", cfg.Naming.ResultVar)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ".", cfg.Dir())
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("Should walk up to the nearest config file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "wither.toml"), "strict = true\n")
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		found, err := Find(nested)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "wither.toml"), found)
	})

	t.Run("Should prefer wither.yaml over other names", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "wither.toml"), "")
		writeFile(t, filepath.Join(root, ".wither.yaml"), "")
		writeFile(t, filepath.Join(root, "wither.yaml"), "")

		found, err := Find(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "wither.yaml"), found)
	})
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wither.yaml")
	writeFile(t, path, `strict: true
private_unexported: false
output:
  suffix: _gen.go
naming:
  wither_prefix: Set
log:
  level: debug
  json: true
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.False(t, cfg.PrivateUnexported)
	assert.Equal(t, "_gen.go", cfg.Output.Suffix)
	assert.True(t, cfg.Output.Comments, "unset keys keep defaults")
	assert.Equal(t, "New", cfg.Naming.ConstructorPrefix)
	assert.Equal(t, "Set", cfg.Naming.WitherPrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, filepath.Dir(path), cfg.Dir())
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wither.toml")
	writeFile(t, path, `strict = true

[output]
dir = "gen"
comments = false

[naming]
constructor_prefix = "Make"
result_var = "r"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "gen", cfg.Output.Dir)
	assert.False(t, cfg.Output.Comments)
	assert.Equal(t, "_with.go", cfg.Output.Suffix)
	assert.Equal(t, "Make", cfg.Naming.ConstructorPrefix)
	assert.Equal(t, "r", cfg.Naming.ResultVar)
}

func TestLoadFile_EmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wither.yaml")
	writeFile(t, path, "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Naming, cfg.Naming)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{name: "unknown yaml key", file: "a.yaml", content: "stritc: true\n"},
		{name: "unknown toml key", file: "b.toml", content: "[naming]\nprefix = \"x\"\n", invalid: true},
		{name: "keyword prefix", file: "c.yaml", content: "naming:\n  result_var: func\n", invalid: true},
		{name: "suffix without extension", file: "d.yaml", content: "output:\n  suffix: _with\n", invalid: true},
		{name: "bad log level", file: "e.toml", content: "[log]\nlevel = \"loud\"\n", invalid: true},
		{name: "unsupported extension", file: "f.json", content: "{}", invalid: true},
		{name: "malformed yaml", file: "g.yaml", content: "naming: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			_, err := LoadFile(path)
			require.Error(t, err)

			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without a config file", func(t *testing.T) {
		cfg, err := Load("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Should prefer an explicit path", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "wither.yaml"), "strict: false\n")
		explicit := filepath.Join(dir, "custom.yaml")
		writeFile(t, explicit, "strict: true\n")

		cfg, err := Load(explicit, dir)
		require.NoError(t, err)
		assert.True(t, cfg.Strict)
		assert.Equal(t, explicit, cfg.Path)
	})

	t.Run("Should fail on a missing explicit path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), ".")
		require.Error(t, err)
	})
}

func TestConfig_Merge(t *testing.T) {
	cfg := Default()

	err := cfg.Merge(&Config{
		Strict: true,
		Output: OutputConfig{Dir: "out"},
		Log:    LogConfig{Level: "debug"},
	})
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "_with.go", cfg.Output.Suffix, "zero override values keep the base")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "New", cfg.Naming.ConstructorPrefix)

	require.NoError(t, cfg.Merge(nil))
}

func TestConfig_ValidateMessage(t *testing.T) {
	cfg := Default()
	cfg.Naming.WitherPrefix = "with-"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "naming.wither_prefix")
	assert.Contains(t, err.Error(), "goident")
}
