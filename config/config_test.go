package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 8, c.Suggestions.Limit)
	assert.True(t, c.Normalizer.AutoWrap)
	assert.Equal(t, tracing.LevelError, c.TraceLevel())
}

func TestLoadKeepsDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.config")
	defer teardown()
	//
	c, err := Load(strings.NewReader("normalizer:\n  auto_wrap: false\ntracing:\n  level: Debug\n"))
	require.NoError(t, err)
	assert.False(t, c.Normalizer.AutoWrap)
	assert.Equal(t, 8, c.Normalizer.IterationFactor)
	assert.Equal(t, 100, c.History.Depth)
	assert.Equal(t, tracing.LevelDebug, c.TraceLevel())
	c, err = Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {
	for _, src := range []string{
		"suggestions:\n  limit: 0\n",
		"history:\n  depth: -1\n",
		"tracing:\n  level: chatty\n",
		"unknown: 1\n",
		"suggestions: [\n",
	} {
		_, err := Load(strings.NewReader(src))
		if !errors.Is(err, ErrConfig) {
			t.Errorf("expected ErrConfig for %q, is %v", src, err)
		}
	}
}

func TestLoadOracle(t *testing.T) {
	c := Default()
	o, err := c.LoadOracle()
	require.NoError(t, err)
	assert.True(t, o.IsKnownProperty("color"))
	//
	path := filepath.Join(t.TempDir(), "props.yaml")
	require.NoError(t, os.WriteFile(path, []byte("properties:\n  - name: foo\n    values: [a, b]\n"), 0o644))
	c.Oracle.Data = path
	o, err = c.LoadOracle()
	require.NoError(t, err)
	assert.True(t, o.IsKnownProperty("foo"))
	assert.False(t, o.IsKnownProperty("color"))
	c.Oracle.Data = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = c.LoadOracle()
	assert.True(t, errors.Is(err, ErrConfig))
}
