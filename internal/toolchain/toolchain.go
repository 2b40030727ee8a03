// Package toolchain reports the versions of the transformation tools whose output
// ends up in the incremental build caches. The versions feed the cache identity,
// so upgrading any tracked tool invalidates previously cached results.
package toolchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/version"
)

// SelfName is the tool name under which sitepack reports its own version.
const SelfName = "sitepack"

// Tracked lists the tools folded into the cache identity, in hashing order.
var Tracked = []string{SelfName, "cache-loader", "vue-loader"}

// ErrUnknownTool is returned by a Reporter that has no information about a tool.
var ErrUnknownTool = errors.New("unknown tool")

// Version pairs a tool name with its reported version.
type Version struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Reporter looks up the installed version of a tool.
type Reporter interface {
	Version(name string) (string, error)
}

// Static answers from a fixed table.
type Static map[string]string

func (s Static) Version(name string) (string, error) {
	if v, ok := s[name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// Self reports the running binary's own version.
func Self() Reporter {
	return Static{SelfName: version.Version}
}

// PackageJSON reads versions from <root>/node_modules/<name>/package.json.
type PackageJSON struct {
	Root     string
	readFile func(string) ([]byte, error)
}

// NewPackageJSON creates a reporter rooted at the project context directory.
func NewPackageJSON(root string) *PackageJSON {
	return &PackageJSON{Root: root, readFile: os.ReadFile}
}

func (p *PackageJSON) Version(name string) (string, error) {
	path := filepath.Join(p.Root, "node_modules", filepath.FromSlash(name), "package.json")
	data, err := p.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s (no %s)", ErrUnknownTool, name, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if manifest.Version == "" {
		return "", fmt.Errorf("%s has no version field", path)
	}
	return manifest.Version, nil
}

// Chain asks each reporter in turn. Reporters answering ErrUnknownTool are
// skipped; any other failure stops the lookup.
type Chain []Reporter

func (c Chain) Version(name string) (string, error) {
	for _, r := range c {
		v, err := r.Version(name)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrUnknownTool) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// Resolve looks up every name in order. The first failure aborts the lookup.
func Resolve(r Reporter, names []string) ([]Version, error) {
	out := make([]Version, 0, len(names))
	for _, name := range names {
		v, err := r.Version(name)
		if err != nil {
			return nil, ferrors.ToolchainError("cannot determine tool version").WithCause(err).
				WithContext("tool", name).
				Build()
		}
		out = append(out, Version{Name: name, Version: v})
	}
	return out, nil
}

// ForProject is the standard lookup order: pinned versions, sitepack itself,
// then the project's installed packages.
func ForProject(root string, pinned map[string]string) Reporter {
	return Chain{Static(pinned), Self(), NewPackageJSON(root)}
}
