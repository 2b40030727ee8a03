package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// TranspileDependency opts a dependency back into script transpilation.
// In YAML it is a plain string matched as a path fragment, or /regexp/
// matched against the full module path.
type TranspileDependency struct {
	Fragment string
	Pattern  *regexp.Regexp
}

// ParseTranspileDependency parses the YAML string form.
func ParseTranspileDependency(raw string) (TranspileDependency, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TranspileDependency{}, fmt.Errorf("empty transpile dependency")
	}
	if len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		re, err := regexp.Compile(raw[1 : len(raw)-1])
		if err != nil {
			return TranspileDependency{}, fmt.Errorf("transpile dependency %s: %w", raw, err)
		}
		return TranspileDependency{Pattern: re}, nil
	}
	return TranspileDependency{Fragment: filepath.Clean(filepath.FromSlash(raw))}, nil
}

// MustTranspileDependency is ParseTranspileDependency for literals known to be valid.
func MustTranspileDependency(raw string) TranspileDependency {
	d, err := ParseTranspileDependency(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// Matches reports whether the module path is covered by this entry.
func (d TranspileDependency) Matches(path string) bool {
	if d.Pattern != nil {
		return d.Pattern.MatchString(path)
	}
	return d.Fragment != "" && strings.Contains(path, d.Fragment)
}

func (d TranspileDependency) String() string {
	if d.Pattern != nil {
		return "/" + d.Pattern.String() + "/"
	}
	return d.Fragment
}

func (d *TranspileDependency) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: transpile dependency must be a string", node.Line)
	}
	parsed, err := ParseTranspileDependency(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// MarshalText emits the same string form UnmarshalYAML accepts.
func (d TranspileDependency) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
