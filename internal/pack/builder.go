package pack

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/util/sets"
)

// probeFiles covers every extension a top-level rule is expected to claim.
var probeFiles = []string{
	"a.vue", "a.js", "a.jsx", "a.vue.js",
	"a.css", "a.pcss", "a.postcss", "a.scss", "a.sass", "a.less", "a.styl", "a.stylus",
	"a.png", "a.jpg", "a.jpeg", "a.gif", "a.svg",
	"a.mp4", "a.webm", "a.ogg", "a.mp3", "a.wav", "a.flac", "a.aac",
	"a.woff", "a.woff2", "a.eot", "a.ttf", "a.otf", "a.WOFF2",
	"a.yaml", "a.yml",
}

// Builder accumulates a descriptor. It is owned by one assembly and passed
// through each step; Freeze hands out the result and retires the builder.
type Builder struct {
	d       *Descriptor
	frozen  bool
	plugins map[string]int
}

func NewBuilder() *Builder {
	return &Builder{
		d: &Descriptor{
			Resolve: Resolve{Alias: NewOrderedMap()},
			Env:     NewOrderedMap(),
		},
		plugins: map[string]int{},
	}
}

func (b *Builder) mutable() *Descriptor {
	if b.frozen {
		panic("pack: builder used after Freeze")
	}
	return b.d
}

// Rule returns the named top-level rule, appending it on first use.
func (b *Builder) Rule(name string) *Rule {
	d := b.mutable()
	for _, r := range d.Rules {
		if r.Name == name {
			return r
		}
	}
	r := &Rule{Name: name}
	d.Rules = append(d.Rules, r)
	return r
}

// Plugin appends a plugin, or replaces one of the same name in place.
func (b *Builder) Plugin(name, use string, args ...any) {
	d := b.mutable()
	p := Plugin{Name: name, Use: use, Args: args}
	if i, ok := b.plugins[name]; ok {
		d.Plugins[i] = p
		return
	}
	b.plugins[name] = len(d.Plugins)
	d.Plugins = append(d.Plugins, p)
}

// Freeze validates the accumulated descriptor and returns it.
func (b *Builder) Freeze() (*Descriptor, error) {
	d := b.mutable()
	if err := validateRules(d.Rules); err != nil {
		return nil, ferrors.InternalError("descriptor failed validation").WithCause(err).Build()
	}
	b.frozen = true
	return d, nil
}

func validateRules(rules []*Rule) error {
	names := sets.New[string]()
	for _, r := range rules {
		if names.Has(r.Name) {
			return fmt.Errorf("duplicate rule %q", r.Name)
		}
		names.Add(r.Name)
		if len(r.OneOf) > 0 && len(r.Uses) > 0 {
			return fmt.Errorf("rule %q has both a chain and branches", r.Name)
		}
	}
	for _, file := range probeFiles {
		var claimed []string
		for _, r := range rules {
			if r.Test != nil && r.Test.MatchString(file) {
				claimed = append(claimed, r.Name)
			}
		}
		if len(claimed) > 1 {
			return fmt.Errorf("%s is claimed by rules %v", file, claimed)
		}
	}
	return nil
}
