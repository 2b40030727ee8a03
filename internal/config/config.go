package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
)

// CurrentVersion is the only project file version this loader accepts.
const CurrentVersion = "1"

// DefaultFileName is the project file looked up when no path is given.
const DefaultFileName = "sitepack.yaml"

// Config is the project settings record consumed by the descriptor assembler.
// All path fields are absolute once Load returns.
type Config struct {
	Version string `yaml:"version"`

	// Context is the project root. Relative paths in the file resolve against it;
	// it defaults to the directory holding the project file.
	Context    string `yaml:"context,omitempty"`
	OutDir     string `yaml:"out_dir,omitempty"`
	AssetsDir  string `yaml:"assets_dir,omitempty"`
	PathPrefix string `yaml:"path_prefix,omitempty"`
	CacheDir   string `yaml:"cache_dir,omitempty"`
	AppPath    string `yaml:"app_path,omitempty"`

	// HTMLTemplateFile points at the page shell used in development builds.
	// Its contents are read into HTMLTemplate at load time.
	HTMLTemplateFile string `yaml:"html_template,omitempty"`
	HTMLTemplate     string `yaml:"-"`

	RuntimeCompiler       bool                  `yaml:"runtime_compiler,omitempty"`
	TranspileDependencies []TranspileDependency `yaml:"transpile_dependencies,omitempty"`
	CSS                   CSSConfig             `yaml:"css,omitempty"`

	// EnvPrefix selects the process variables exposed to the bundle.
	EnvPrefix string `yaml:"env_prefix,omitempty"`

	// Customize holds the serialized build-customization hook. It is opaque to
	// sitepack apart from being part of the cache identity.
	Customize     string `yaml:"customize,omitempty"`
	CustomizeFile string `yaml:"customize_file,omitempty"`

	// Tools pins tool versions, taking precedence over node_modules lookups.
	Tools map[string]string `yaml:"tools,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// CSSConfig carries per-dialect loader option overrides.
type CSSConfig struct {
	LoaderOptions map[string]map[string]any `yaml:"loader_options,omitempty"`
}

// LoaderOption returns the override options for one loader key (never nil).
func (c CSSConfig) LoaderOption(key string) map[string]any {
	if opts, ok := c.LoaderOptions[key]; ok && opts != nil {
		return opts
	}
	return map[string]any{}
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load reads, normalizes, defaults and validates a project file.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, ferrors.ConfigError("cannot resolve project file path").WithCause(err).Build()
	}
	if err := loadEnvFiles(filepath.Dir(absPath)); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError("project file not found").
				WithContext("path", absPath).
				Build()
		}
		return nil, ferrors.FileSystemError("failed to read project file").WithCause(err).
			WithContext("path", absPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))), filepath.Dir(absPath))
	if err != nil {
		return nil, err
	}
	if err := cfg.readReferencedFiles(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a project file body and runs normalization, defaults and validation.
// baseDir stands in for the project file's directory when resolving Context.
func Parse(data []byte, baseDir string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ferrors.ConfigError("failed to parse project file").WithCause(err).Build()
	}
	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported project file version: %s (expected %s)", cfg.Version, CurrentVersion)).Build()
	}
	cfg.Version = CurrentVersion

	res, err := NormalizeConfig(&cfg, baseDir)
	if err != nil {
		return nil, ferrors.ConfigError("normalize").WithCause(err).Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("Project file normalized", slog.String("warning", w))
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, ferrors.ConfigError("failed to apply defaults").WithCause(err).Build()
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, ferrors.ValidationError("project file validation failed").WithCause(err).Build()
	}
	return &cfg, nil
}

// readReferencedFiles loads the HTML template and customization source named in the file.
func (c *Config) readReferencedFiles() error {
	if c.HTMLTemplateFile != "" {
		b, err := os.ReadFile(c.HTMLTemplateFile)
		if err != nil {
			return ferrors.ConfigError("cannot read html template").WithCause(err).
				WithContext("path", c.HTMLTemplateFile).
				Build()
		}
		c.HTMLTemplate = string(b)
	}
	if c.CustomizeFile != "" {
		b, err := os.ReadFile(c.CustomizeFile)
		if err != nil {
			return ferrors.ConfigError("cannot read customization source").WithCause(err).
				WithContext("path", c.CustomizeFile).
				Build()
		}
		c.Customize = string(b)
	}
	return nil
}

// Resolve joins p onto the project context unless it is already absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Context, p)
}

// Init writes an example project file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("project file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Config{
		Version:               CurrentVersion,
		OutDir:                "dist",
		AssetsDir:             "dist/assets",
		PathPrefix:            "/",
		CacheDir:              ".sitepack",
		TranspileDependencies: []TranspileDependency{MustTranspileDependency("my-esm-package"), MustTranspileDependency(`/@scope\/.*-ui/`)},
		CSS: CSSConfig{LoaderOptions: map[string]map[string]any{
			"scss": {"additionalData": `@import "@/styles/variables.scss";`},
		}},
		EnvPrefix: DefaultEnvPrefix,
		Logging:   LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	header := "# sitepack project file\n# Values may reference environment variables: ${VAR}\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write project file").WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// blank reports whether s is empty after trimming.
func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Inputs lists the files a project loaded from configPath depends on: the
// project file, its env files and any referenced template or hook source.
func (c *Config) Inputs(configPath string) []string {
	dir := filepath.Dir(configPath)
	out := []string{configPath}
	for _, name := range envFiles {
		out = append(out, filepath.Join(dir, name))
	}
	if c.HTMLTemplateFile != "" {
		out = append(out, c.HTMLTemplateFile)
	}
	if c.CustomizeFile != "" {
		out = append(out, c.CustomizeFile)
	}
	return out
}
