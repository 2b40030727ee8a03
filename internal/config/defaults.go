package config

import "path/filepath"

// DefaultEnvPrefix selects the process variables exposed to the bundle.
const DefaultEnvPrefix = "SITEPACK_"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PathsDefaultApplier fills output, cache and runtime locations.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.OutDir == "" {
		cfg.OutDir = filepath.Join(cfg.Context, "dist")
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = filepath.Join(cfg.OutDir, "assets")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(cfg.Context, ".sitepack")
	}
	if cfg.AppPath == "" {
		cfg.AppPath = filepath.Join(cfg.Context, "node_modules", "sitepack", "app")
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/"
	}
	return nil
}

// BundleDefaultApplier fills bundle-facing options.
type BundleDefaultApplier struct{}

func (BundleDefaultApplier) Domain() string { return "bundle" }

func (BundleDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.EnvPrefix == "" {
		cfg.EnvPrefix = DefaultEnvPrefix
	}
	if cfg.CSS.LoaderOptions == nil {
		cfg.CSS.LoaderOptions = map[string]map[string]any{}
	}
	return nil
}

// LoggingDefaultApplier fills logging options.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{PathsDefaultApplier{}, BundleDefaultApplier{}, LoggingDefaultApplier{}}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
