package pack

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitepack/internal/logfields"
)

// Env keys exposed to the bundle in this order ahead of prefixed variables.
const (
	EnvPublicPath   = "process.env.PUBLIC_PATH"
	EnvNodeEnv      = "process.env.NODE_ENV"
	EnvCacheDir     = "SITEPACK_CACHE_DIR"
	EnvDataDir      = "SITEPACK_DATA_DIR"
	EnvSiteMode     = "SITEPACK_MODE"
	EnvIsClient     = "process.isClient"
	EnvIsServer     = "process.isServer"
	EnvIsProduction = "process.isProduction"
)

// Literal renders v as code for compile-time substitution. Booleans and
// numbers are embedded as-is; everything else becomes a JSON string.
func Literal(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return quote(x)
	default:
		return quote(fmt.Sprint(x))
	}
}

func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}

// publicPath joins the prefix onto the root and guarantees a trailing slash.
func publicPath(prefix string) string {
	p := path.Join("/", filepath.ToSlash(prefix))
	if p != "/" {
		p += "/"
	}
	return p
}

// dataDir is where generated page data lives inside the cache directory.
func dataDir(cacheDir string) string {
	return filepath.Join(cacheDir, "data")
}

// buildEnv fills the substitution map: fixed keys first, then every process
// variable carrying the project prefix, sorted by name. Fixed keys win.
func (a *assembly) buildEnv() {
	env := a.b.mutable().Env
	env.Set(EnvPublicPath, Literal(a.publicPath))
	env.Set(EnvNodeEnv, Literal(a.rt.NodeEnv))
	env.Set(EnvCacheDir, Literal(a.cfg.CacheDir))
	env.Set(EnvDataDir, Literal(dataDir(a.cfg.CacheDir)))
	env.Set(EnvSiteMode, Literal(a.rt.SiteMode))
	env.Set(EnvIsClient, Literal(!a.mode.Server))
	env.Set(EnvIsServer, Literal(a.mode.Server))
	env.Set(EnvIsProduction, Literal(a.rt.NodeEnv == "production"))

	for _, kv := range prefixedVars(a.rt.Environ, a.cfg.EnvPrefix) {
		key := "process.env." + kv[0]
		if env.Has(key) {
			a.log.Debug("Environment variable shadowed by built-in key", logfields.EnvKey(kv[0]))
			continue
		}
		env.Set(key, Literal(kv[1]))
	}
}

// prefixedVars returns name/value pairs whose name starts with prefix, sorted
// by name. Later duplicates override earlier ones, like the process table.
func prefixedVars(environ []string, prefix string) [][2]string {
	if prefix == "" {
		return nil
	}
	seen := map[string]string{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		seen[name] = value
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([][2]string, 0, len(names))
	for _, n := range names {
		out = append(out, [2]string{n, seen[n]})
	}
	return out
}
