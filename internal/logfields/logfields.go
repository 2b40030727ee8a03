package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMode       = "mode"
	KeyTarget     = "target"
	KeyRule       = "rule"
	KeyPlugin     = "plugin"
	KeyDialect    = "dialect"
	KeyTool       = "tool"
	KeyPath       = "path"
	KeyCacheID    = "cache_id"
	KeyEnvKey     = "env_key"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Dialect(d string) slog.Attr      { return slog.String(KeyDialect, d) }
func Tool(name string) slog.Attr      { return slog.String(KeyTool, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func CacheID(id string) slog.Attr     { return slog.String(KeyCacheID, id) }
func EnvKey(k string) slog.Attr       { return slog.String(KeyEnvKey, k) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
