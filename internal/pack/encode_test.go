package pack

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitepack/internal/config"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatYAML, "YAML": FormatYAML, "yml": FormatYAML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestEncode_JSON(t *testing.T) {
	cfg := testConfig()
	cfg.TranspileDependencies = []config.TranspileDependency{config.MustTranspileDependency(`/^esm-/`)}
	d := mustAssemble(t, cfg, prodBrowser, Runtime{Environ: []string{"SITEPACK_A=1"}})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d, FormatJSON))

	var doc struct {
		Mode  string `json:"mode"`
		Rules []struct {
			Name    string          `json:"name"`
			Test    json.RawMessage `json:"test"`
			Exclude []struct {
				AppPath               string   `json:"appPath"`
				TranspileDependencies []string `json:"transpileDependencies"`
			} `json:"exclude"`
		} `json:"rules"`
		Env   map[string]string `json:"env"`
		Cache CacheIdentity     `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "production", doc.Mode)
	assert.JSONEq(t, `"\\.vue$"`, string(doc.Rules[0].Test))
	for _, r := range doc.Rules {
		if r.Name == "fonts" {
			assert.JSONEq(t, `{"source": "\\.(woff2?|eot|ttf|otf)(\\?.*)?$", "flags": "i"}`, string(r.Test))
		}
	}
	require.Len(t, doc.Rules[1].Exclude, 1)
	assert.Equal(t, []string{"/^esm-/"}, doc.Rules[1].Exclude[0].TranspileDependencies)
	assert.Equal(t, `"1"`, doc.Env["process.env.SITEPACK_A"])
	assert.Equal(t, d.Cache, doc.Cache)

	// Key order of the env object follows insertion order.
	raw := buf.String()
	assert.Less(t, strings.Index(raw, `"process.env.PUBLIC_PATH"`), strings.Index(raw, `"process.isProduction"`))
	assert.Contains(t, raw, `"name": "assets/img/[name].[hash:8].[ext]"`)
}

func TestEncode_YAMLKeepsEnvOrder(t *testing.T) {
	d := mustAssemble(t, testConfig(), devBrowser, Runtime{Environ: []string{"SITEPACK_B=2"}})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d, FormatYAML))

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &node))
	root := node.Content[0]
	var env *yaml.Node
	for i := 0; i < len(root.Content); i += 2 {
		if root.Content[i].Value == "env" {
			env = root.Content[i+1]
		}
	}
	require.NotNil(t, env)
	var keys []string
	for i := 0; i < len(env.Content); i += 2 {
		keys = append(keys, env.Content[i].Value)
	}
	assert.Equal(t, append(append([]string{}, baseEnvKeys...), "process.env.SITEPACK_B"), keys)

	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &generic))
	assert.Equal(t, "development", generic["mode"])
	assert.Equal(t, "cheap-module-eval-source-map", generic["devtool"])
}

func TestEncode_UnknownFormat(t *testing.T) {
	d := mustAssemble(t, testConfig(), devBrowser, Runtime{})
	assert.Error(t, Encode(&bytes.Buffer{}, d, Format("toml")))
}
