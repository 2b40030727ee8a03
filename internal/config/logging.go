package config

import (
	"git.home.luguber.info/inful/sitepack/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// BuildMode selects production or development output.
type BuildMode string

const (
	BuildModeDevelopment BuildMode = "development"
	BuildModeProduction  BuildMode = "production"
)

var buildModeNormalizer = normalization.NewNormalizer(map[string]BuildMode{
	"development": BuildModeDevelopment,
	"dev":         BuildModeDevelopment,
	"production":  BuildModeProduction,
	"prod":        BuildModeProduction,
}, BuildModeDevelopment)

// ParseBuildMode accepts the long and short spellings; empty means development.
func ParseBuildMode(raw string) (BuildMode, error) {
	return buildModeNormalizer.NormalizeWithError(raw)
}
