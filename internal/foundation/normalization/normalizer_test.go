package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildMode string

const (
	modeDevelopment buildMode = "development"
	modeProduction  buildMode = "production"
)

func newModeNormalizer() *Normalizer[buildMode] {
	return NewNormalizer(map[string]buildMode{
		"development": modeDevelopment,
		"dev":         modeDevelopment,
		"production":  modeProduction,
		"prod":        modeProduction,
	}, modeDevelopment)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newModeNormalizer()

	tests := []struct {
		name     string
		input    string
		expected buildMode
	}{
		{"exact match", "production", modeProduction},
		{"alias", "prod", modeProduction},
		{"case insensitive", "PRODUCTION", modeProduction},
		{"with spaces", "  dev  ", modeDevelopment},
		{"invalid falls back to default", "staging", modeDevelopment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newModeNormalizer()

	got, err := n.NormalizeWithError(" Prod ")
	require.NoError(t, err)
	assert.Equal(t, modeProduction, got)

	got, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, modeDevelopment, got)

	_, err = n.NormalizeWithError("staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[dev development prod production]")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newModeNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, "dev", n.ValidKeys()[0])
}
