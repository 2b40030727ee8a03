package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTranspileDependency_Matches(t *testing.T) {
	frag := MustTranspileDependency("vuetify/lib/")
	assert.Equal(t, "vuetify/lib", frag.Fragment)
	assert.True(t, frag.Matches("/p/node_modules/vuetify/lib/components/index.js"))
	assert.False(t, frag.Matches("/p/node_modules/vue/dist/vue.js"))

	re := MustTranspileDependency(`/node_modules\/(foo|bar)\//`)
	assert.True(t, re.Matches("/p/node_modules/bar/index.js"))
	assert.False(t, re.Matches("/p/node_modules/baz/index.js"))

	_, err := ParseTranspileDependency("  ")
	assert.Error(t, err)
}

func TestTranspileDependency_YAML(t *testing.T) {
	var got struct {
		Deps []TranspileDependency `yaml:"deps"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("deps: [a-lib, /^b/]"), &got))
	require.Len(t, got.Deps, 2)
	assert.Equal(t, "/^b/", got.Deps[1].String())

	out, err := yaml.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "deps:\n    - a-lib\n    - /^b/\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("deps: [{a: 1}]"), &got))
}
