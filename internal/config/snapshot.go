package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Snapshot computes a stable hash of the fields that shape the assembled descriptor.
// Map-valued fields are hashed in sorted key order. Logging settings are excluded.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }

	w("context", c.Context)
	w("out_dir", c.OutDir)
	w("assets_dir", c.AssetsDir)
	w("path_prefix", c.PathPrefix)
	w("cache_dir", c.CacheDir)
	w("app_path", c.AppPath)
	w("html_template", c.HTMLTemplate)
	w("runtime_compiler", fmt.Sprint(c.RuntimeCompiler))
	for _, d := range c.TranspileDependencies {
		w("transpile", d.String())
	}
	for _, key := range sortedKeys(c.CSS.LoaderOptions) {
		w("css."+key, fmt.Sprintf("%v", c.CSS.LoaderOptions[key]))
	}
	w("env_prefix", c.EnvPrefix)
	w("customize", c.Customize)
	for _, key := range sortedKeys(c.Tools) {
		w("tools."+key, c.Tools[key])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
