package pack

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Descriptor is the frozen build-configuration document handed to the bundler.
type Descriptor struct {
	Mode          string        `json:"mode" yaml:"mode"`
	Devtool       string        `json:"devtool,omitempty" yaml:"devtool,omitempty"`
	Target        string        `json:"target" yaml:"target"`
	Context       string        `json:"context" yaml:"context"`
	Output        Output        `json:"output" yaml:"output"`
	Resolve       Resolve       `json:"resolve" yaml:"resolve"`
	ResolveLoader ResolveLoader `json:"resolveLoader" yaml:"resolveLoader"`
	NoParse       *Pattern      `json:"noParse,omitempty" yaml:"noParse,omitempty"`
	Rules         []*Rule       `json:"rules" yaml:"rules"`
	Plugins       []Plugin      `json:"plugins" yaml:"plugins"`
	Optimization  Optimization  `json:"optimization" yaml:"optimization"`
	Env           *OrderedMap   `json:"env" yaml:"env"`
	Cache         CacheIdentity `json:"cache" yaml:"cache"`
}

type Output struct {
	Path          string `json:"path" yaml:"path"`
	PublicPath    string `json:"publicPath" yaml:"publicPath"`
	Filename      string `json:"filename" yaml:"filename"`
	ChunkFilename string `json:"chunkFilename" yaml:"chunkFilename"`
	Pathinfo      bool   `json:"pathinfo,omitempty" yaml:"pathinfo,omitempty"`
}

type Resolve struct {
	Symlinks   bool        `json:"symlinks" yaml:"symlinks"`
	Alias      *OrderedMap `json:"alias" yaml:"alias"`
	Extensions []string    `json:"extensions" yaml:"extensions"`
	Modules    []string    `json:"modules" yaml:"modules"`
}

type ResolveLoader struct {
	Symlinks bool     `json:"symlinks" yaml:"symlinks"`
	Modules  []string `json:"modules" yaml:"modules"`
}

// Options is a loader or plugin option bag.
type Options map[string]any

// Use is one named loader in a rule's processing chain.
type Use struct {
	Name    string  `json:"name" yaml:"name"`
	Loader  string  `json:"loader" yaml:"loader"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Matcher decides whether a module path is excluded from a rule.
type Matcher interface {
	Excludes(path string) bool
}

// Rule maps a class of modules onto a loader chain. A rule with OneOf
// delegates to the first branch whose resource query matches.
type Rule struct {
	Name          string    `json:"name" yaml:"name"`
	Test          *Pattern  `json:"test,omitempty" yaml:"test,omitempty"`
	ResourceQuery *Pattern  `json:"resourceQuery,omitempty" yaml:"resourceQuery,omitempty"`
	Exclude       []Matcher `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Uses          []Use     `json:"use,omitempty" yaml:"use,omitempty"`
	OneOf         []*Rule   `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// Matches reports whether the rule applies to a module with the given path
// and query string (without the leading '?').
func (r *Rule) Matches(path, query string) bool {
	if r.Test != nil && !r.Test.MatchString(path) {
		return false
	}
	if r.ResourceQuery != nil && !r.ResourceQuery.MatchString(query) {
		return false
	}
	for _, m := range r.Exclude {
		if m.Excludes(path) {
			return false
		}
	}
	return true
}

// Branch returns the first OneOf branch that accepts the query, or nil.
func (r *Rule) Branch(query string) *Rule {
	for _, b := range r.OneOf {
		if b.ResourceQuery == nil || b.ResourceQuery.MatchString(query) {
			return b
		}
	}
	return nil
}

// Loaders lists the loader identifiers of the chain in order.
func (r *Rule) Loaders() []string {
	out := make([]string, 0, len(r.Uses))
	for _, u := range r.Uses {
		out = append(out, u.Loader)
	}
	return out
}

// UseNamed returns the chain entry with the given name.
func (r *Rule) UseNamed(name string) (Use, bool) {
	for _, u := range r.Uses {
		if u.Name == name {
			return u, true
		}
	}
	return Use{}, false
}

func (r *Rule) use(name, loader string, opts Options) *Rule {
	r.Uses = append(r.Uses, Use{Name: name, Loader: loader, Options: opts})
	return r
}

func (r *Rule) branch(name string) *Rule {
	for _, b := range r.OneOf {
		if b.Name == name {
			return b
		}
	}
	b := &Rule{Name: name}
	r.OneOf = append(r.OneOf, b)
	return b
}

// Plugin is an ordered plugin instantiation: Use names the constructor module.
type Plugin struct {
	Name string `json:"name" yaml:"name"`
	Use  string `json:"use" yaml:"use"`
	Args []any  `json:"args,omitempty" yaml:"args,omitempty"`
}

type Optimization struct {
	Minimize    *bool        `json:"minimize,omitempty" yaml:"minimize,omitempty"`
	SplitChunks *SplitChunks `json:"splitChunks,omitempty" yaml:"splitChunks,omitempty"`
}

type SplitChunks struct {
	CacheGroups map[string]*CacheGroup `json:"cacheGroups" yaml:"cacheGroups"`
}

// CacheGroup groups modules whose request starts with RequestPrefix.
type CacheGroup struct {
	RequestPrefix string `json:"requestPrefix" yaml:"requestPrefix"`
	// Name false keeps the bundler's default chunk naming.
	Name    any    `json:"name" yaml:"name"`
	Chunks  string `json:"chunks" yaml:"chunks"`
	MinSize int    `json:"minSize" yaml:"minSize"`
	MaxSize int    `json:"maxSize" yaml:"maxSize"`
}

// ModuleRef is the part of a bundler module a cache group inspects.
type ModuleRef struct {
	Resource string
	Request  string
}

// Matches reports whether the module belongs to the group.
func (g *CacheGroup) Matches(m ModuleRef) bool {
	return m.Resource != "" && strings.HasPrefix(m.Request, g.RequestPrefix)
}

// Pattern is a compiled regular expression. It serializes as its source, or as
// {source, flags} when flags are set, so the source never carries inline (?flags)
// groups a JavaScript consumer could not parse.
type Pattern struct {
	re     *regexp.Regexp
	source string
	flags  string
}

// MustPattern compiles expr and panics on failure; it is used for literals.
func MustPattern(expr string) *Pattern {
	return MustPatternFlags(expr, "")
}

// MustPatternFlags is MustPattern with regexp flags (any of "i", "m", "s").
func MustPatternFlags(expr, flags string) *Pattern {
	p, err := CompilePatternFlags(expr, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// CompilePattern compiles expr.
func CompilePattern(expr string) (*Pattern, error) {
	return CompilePatternFlags(expr, "")
}

// CompilePatternFlags compiles expr with flags applied to the whole expression.
func CompilePatternFlags(expr, flags string) (*Pattern, error) {
	for _, f := range flags {
		if !strings.ContainsRune("ims", f) {
			return nil, fmt.Errorf("compile pattern %q: unsupported flag %q", expr, f)
		}
	}
	full := expr
	if flags != "" {
		full = "(?" + flags + ")" + expr
	}
	re, err := regexp.Compile(full)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return &Pattern{re: re, source: expr, flags: flags}, nil
}

func (p *Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

// String returns the source without flags.
func (p *Pattern) String() string { return p.source }

// Flags returns the flag letters, empty when none are set.
func (p *Pattern) Flags() string { return p.flags }

type flaggedPattern struct {
	Source string `json:"source" yaml:"source"`
	Flags  string `json:"flags" yaml:"flags"`
}

func (p *Pattern) MarshalJSON() ([]byte, error) {
	if p.flags == "" {
		return json.Marshal(p.source)
	}
	return json.Marshal(flaggedPattern{Source: p.source, Flags: p.flags})
}

func (p *Pattern) MarshalYAML() (any, error) {
	if p.flags == "" {
		return p.source, nil
	}
	return flaggedPattern{Source: p.source, Flags: p.flags}, nil
}
