package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations and paths prior to default application.
// Relative paths are resolved against Context, which itself resolves against baseDir.
func NormalizeConfig(c *Config, baseDir string) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	switch {
	case blank(c.Context):
		c.Context = base
	case !filepath.IsAbs(c.Context):
		c.Context = filepath.Join(base, c.Context)
	default:
		c.Context = filepath.Clean(c.Context)
	}

	for _, p := range []*string{&c.OutDir, &c.AssetsDir, &c.CacheDir, &c.AppPath, &c.HTMLTemplateFile, &c.CustomizeFile} {
		if !blank(*p) {
			*p = c.Resolve(strings.TrimSpace(*p))
		}
	}

	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		res.Warnings = append(res.Warnings, fmt.Sprintf("path_prefix %q has no leading slash, using %q", c.PathPrefix, "/"+c.PathPrefix))
		c.PathPrefix = "/" + c.PathPrefix
	}

	normalizeLogging(&c.Logging, res)
	return res, nil
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if lvl, err := logLevelNormalizer.NormalizeWithError(string(l.Level)); err != nil {
		res.Warnings = append(res.Warnings, warnUnknown("logging.level", string(l.Level), string(LogLevelInfo)))
		l.Level = LogLevelInfo
	} else if !blank(string(l.Level)) {
		l.Level = lvl
	}
	if f, err := logFormatNormalizer.NormalizeWithError(string(l.Format)); err != nil {
		res.Warnings = append(res.Warnings, warnUnknown("logging.format", string(l.Format), string(LogFormatText)))
		l.Format = LogFormatText
	} else if !blank(string(l.Format)) {
		l.Format = f
	}
}

func warnUnknown(field, raw, fallback string) string {
	return fmt.Sprintf("unknown %s %q, using %q", field, raw, fallback)
}
