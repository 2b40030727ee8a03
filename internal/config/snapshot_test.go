package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_StableAndSensitive(t *testing.T) {
	base := t.TempDir()
	parse := func(body string) *Config {
		cfg, err := Parse([]byte(body), base)
		require.NoError(t, err)
		return cfg
	}

	a := parse("css:\n  loader_options:\n    css: {a: 1}\n    scss: {b: 2}\n")
	b := parse("css:\n  loader_options:\n    scss: {b: 2}\n    css: {a: 1}\n")
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	c := parse("css:\n  loader_options:\n    css: {a: 2}\n    scss: {b: 2}\n")
	assert.NotEqual(t, a.Snapshot(), c.Snapshot())

	d := parse("css:\n  loader_options:\n    css: {a: 1}\n    scss: {b: 2}\nlogging:\n  level: debug\n")
	assert.Equal(t, a.Snapshot(), d.Snapshot(), "logging does not affect the descriptor")

	var nilCfg *Config
	assert.Empty(t, nilCfg.Snapshot())
}
