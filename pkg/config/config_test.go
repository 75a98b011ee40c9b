package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Heading1Mapping)
	assert.False(t, cfg.BoldToHeading)
	assert.Equal(t, "  ", cfg.Indent.Unit())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"tab", Config{Heading1Mapping: 1, Indent: Indent{Type: IndentTab}}, true},
		{"four spaces", Config{Heading1Mapping: 5, Indent: Indent{Type: IndentSpace, Size: 4}}, true},
		{"zero heading", Config{Heading1Mapping: 0, Indent: Indent{Type: IndentTab}}, false},
		{"spaces without size", Config{Heading1Mapping: 3, Indent: Indent{Type: IndentSpace}}, false},
		{"unknown indent", Config{Heading1Mapping: 3, Indent: Indent{Type: "dots", Size: 1}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bold_to_heading: true\n"), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.BoldToHeading)
		assert.Equal(t, 3, cfg.Heading1Mapping)
		assert.Equal(t, Indent{Type: IndentSpace, Size: 2}, cfg.Indent)
	})

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(dir, "full.yaml")
		data := "heading1_mapping: 4\nindent:\n  type: tab\n  size: 0\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Heading1Mapping)
		assert.Equal(t, "\t", cfg.Indent.Unit())
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("heading1_mapping: 0\n"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseIndent(t *testing.T) {
	ind, err := ParseIndent("tab")
	require.NoError(t, err)
	assert.Equal(t, Indent{Type: IndentTab}, ind)

	ind, err = ParseIndent("4")
	require.NoError(t, err)
	assert.Equal(t, Indent{Type: IndentSpace, Size: 4}, ind)

	_, err = ParseIndent("0")
	assert.Error(t, err)
	_, err = ParseIndent("two")
	assert.Error(t, err)
}
