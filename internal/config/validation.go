package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitepack/internal/foundation"
	"git.home.luguber.info/inful/sitepack/internal/util/sets"
)

// CSSLoaderKeys lists the loader_options keys the assembler understands.
var CSSLoaderKeys = []string{"css", "postcss", "scss", "sass", "less", "stylus"}

var configValidators = foundation.NewValidatorChain[*Config](
	validatePaths,
	validateCSS,
	validateEnv,
)

// ValidateConfig validates a normalized, defaulted configuration and reports
// every problem found.
func ValidateConfig(cfg *Config) error {
	return configValidators.Validate(cfg).ToError()
}

func validatePaths(c *Config) foundation.ValidationResult {
	res := foundation.Valid()
	if !filepath.IsAbs(c.Context) {
		res = res.Combine(foundation.Fail("context", "absolute", "must be absolute, got %q", c.Context))
	}
	rel, err := filepath.Rel(c.OutDir, c.AssetsDir)
	switch {
	case err != nil:
		res = res.Combine(foundation.Fail("assets_dir", "relative", "%q is not relative to out_dir %q: %v", c.AssetsDir, c.OutDir, err))
	case rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		res = res.Combine(foundation.Fail("assets_dir", "inside_out_dir", "%q must be inside out_dir %q", c.AssetsDir, c.OutDir))
	}
	if c.CacheDir == c.OutDir {
		res = res.Combine(foundation.Fail("cache_dir", "distinct", "must differ from out_dir"))
	}
	return res
}

func validateCSS(c *Config) foundation.ValidationResult {
	res := foundation.Valid()
	known := sets.New(CSSLoaderKeys...)
	unknown := sets.New[string]()
	for key := range c.CSS.LoaderOptions {
		if !known.Has(key) {
			unknown.Add(key)
		}
	}
	if len(unknown) > 0 {
		res = res.Combine(foundation.Fail("css.loader_options", "known_keys", "unknown keys %v (valid: %v)", sets.Sorted(unknown), CSSLoaderKeys))
	}
	if plugins, ok := c.CSS.LoaderOption("postcss")["plugins"]; ok {
		if _, isList := plugins.([]any); !isList {
			res = res.Combine(foundation.Fail("css.loader_options.postcss.plugins", "list", "must be a list, got %T", plugins))
		}
	}
	return res
}

func validateEnv(c *Config) foundation.ValidationResult {
	if strings.ContainsAny(c.EnvPrefix, "= \t") {
		return foundation.Fail("env_prefix", "charset", "%q must not contain '=' or whitespace", c.EnvPrefix)
	}
	return foundation.Valid()
}
