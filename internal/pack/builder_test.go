package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
)

func TestBuilder_RuleIsGetOrCreate(t *testing.T) {
	b := NewBuilder()
	r := b.Rule("js")
	r.Test = MustPattern(`\.js$`)
	assert.Same(t, r, b.Rule("js"))
	b.Rule("vue")

	d, err := b.Freeze()
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "vue"}, ruleNames(d))
}

func TestBuilder_PluginReplacesInPlace(t *testing.T) {
	b := NewBuilder()
	b.Plugin("a", "mod-a")
	b.Plugin("b", "mod-b")
	b.Plugin("a", "mod-a2", 1)

	d, err := b.Freeze()
	require.NoError(t, err)
	require.Len(t, d.Plugins, 2)
	assert.Equal(t, Plugin{Name: "a", Use: "mod-a2", Args: []any{1}}, d.Plugins[0])
	assert.Equal(t, "b", d.Plugins[1].Name)
}

func TestBuilder_FreezeRejectsOverlappingRules(t *testing.T) {
	b := NewBuilder()
	b.Rule("css").Test = MustPattern(`\.css$`)
	b.Rule("styles").Test = MustPattern(`\.(s?css)$`)

	d, err := b.Freeze()
	assert.Nil(t, d)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryInternal))
	assert.ErrorContains(t, err, "a.css is claimed by rules [css styles]")
}

func TestBuilder_FreezeRejectsMixedRule(t *testing.T) {
	b := NewBuilder()
	r := b.Rule("css")
	r.use("css-loader", "css-loader", nil)
	r.branch("normal")

	_, err := b.Freeze()
	assert.ErrorContains(t, err, "both a chain and branches")
}

func TestBuilder_FrozenBuilderPanics(t *testing.T) {
	b := NewBuilder()
	_, err := b.Freeze()
	require.NoError(t, err)

	assert.Panics(t, func() { b.Rule("late") })
	assert.Panics(t, func() { b.Plugin("late", "x") })
	assert.Panics(t, func() { _, _ = b.Freeze() })
}

func TestRule_MatchesWithoutTest(t *testing.T) {
	r := &Rule{ResourceQuery: MustPattern(`blockType=(x)`)}
	assert.True(t, r.Matches("/a.vue", "blockType=x"))
	assert.False(t, r.Matches("/a.vue", ""))
	assert.Nil(t, (&Rule{}).Branch("q"))
}

func TestCompilePattern(t *testing.T) {
	p, err := CompilePattern(`\.md$`)
	require.NoError(t, err)
	assert.True(t, p.MatchString("a.md"))

	_, err = CompilePattern(`(`)
	assert.Error(t, err)
}

func TestCompilePatternFlags(t *testing.T) {
	p, err := CompilePatternFlags(`\.woff$`, "i")
	require.NoError(t, err)
	assert.True(t, p.MatchString("A.WOFF"))
	assert.Equal(t, `\.woff$`, p.String())
	assert.Equal(t, "i", p.Flags())

	out, err := p.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, flaggedPattern{Source: `\.woff$`, Flags: "i"}, out)

	plain, err := MustPattern(`\.md$`).MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, `\.md$`, plain)

	_, err = CompilePatternFlags(`a`, "g")
	assert.Error(t, err)
}
