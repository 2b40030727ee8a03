package pack

import (
	"strings"

	"git.home.luguber.info/inful/sitepack/internal/config"
)

var (
	vueScriptPattern   = MustPattern(`\.vue\.jsx?$`)
	clientEntryPattern = MustPattern(`sitepack\.client\.js$`)
	nodeModulesPattern = MustPattern(`node_modules`)
)

// ScriptExclusion keeps dependency scripts out of transpilation unless they
// are single-file component scripts, the client entry, an opted-in
// dependency, or part of the runtime app. The checks run in that order.
type ScriptExclusion struct {
	AppPath               string                       `json:"appPath" yaml:"appPath"`
	TranspileDependencies []config.TranspileDependency `json:"transpileDependencies,omitempty" yaml:"transpileDependencies,omitempty"`
}

func (s ScriptExclusion) Excludes(path string) bool {
	if vueScriptPattern.MatchString(path) {
		return false
	}
	if clientEntryPattern.MatchString(path) {
		return false
	}
	for _, dep := range s.TranspileDependencies {
		if dep.Matches(path) {
			return false
		}
	}
	if s.AppPath != "" && strings.HasPrefix(path, s.AppPath) {
		return false
	}
	return nodeModulesPattern.MatchString(path)
}
