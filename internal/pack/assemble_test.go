package pack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/htmlrender"
	"git.home.luguber.info/inful/sitepack/internal/metrics"
	"git.home.luguber.info/inful/sitepack/internal/toolchain"
)

type failingRenderer struct{ calls int }

func (f *failingRenderer) Render(string, htmlrender.Slots) (string, error) {
	f.calls++
	return "", ferrors.RenderError("boom").Build()
}

func TestAssemble_VersionLookupFailureAborts(t *testing.T) {
	rec := newCountingRecorder()
	asm := New(testConfig(),
		WithVersions(toolchain.Static{toolchain.SelfName: "1.0.0"}),
		WithLogger(quietLogger()),
		WithRecorder(rec))

	d, err := asm.Assemble(prodBrowser, Runtime{})
	assert.Nil(t, d)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryToolchain))
	assert.True(t, errors.Is(err, toolchain.ErrUnknownTool))
	assert.Equal(t, 1, rec.outcomes[metrics.ResultFailed])
	assert.Zero(t, rec.rules)
}

func TestAssemble_RenderFailureOnlyInDevelopment(t *testing.T) {
	r := &failingRenderer{}
	asm := newTestAssembler(testConfig(), WithRenderer(r))

	d, err := asm.Assemble(devBrowser, Runtime{})
	assert.Nil(t, d)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))

	d, err = asm.Assemble(prodBrowser, Runtime{})
	require.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, 1, r.calls)
}

func TestAssemble_TemplateWithoutMountPoint(t *testing.T) {
	cfg := testConfig()
	cfg.HTMLTemplate = `<html><body><main></main></body></html>`

	_, err := newTestAssembler(cfg).Assemble(devBrowser, Runtime{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))

	_, err = newTestAssembler(cfg).Assemble(prodServer, Runtime{})
	assert.NoError(t, err)
}

func TestAssemble_RecordsMetrics(t *testing.T) {
	rec := newCountingRecorder()
	d, err := newTestAssembler(testConfig(), WithRecorder(rec)).Assemble(prodBrowser, Runtime{})
	require.NoError(t, err)

	assert.Equal(t, 1, rec.outcomes[metrics.ResultSuccess])
	assert.Len(t, rec.observed, 1)
	assert.Equal(t, len(d.Rules), rec.rules)
	assert.Equal(t, len(d.Plugins), rec.plugins)
}

func TestAssemble_IndependentDescriptors(t *testing.T) {
	asm := newTestAssembler(testConfig())
	a, err := asm.Assemble(devBrowser, Runtime{})
	require.NoError(t, err)
	b, err := asm.Assemble(devBrowser, Runtime{})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, a.Cache, b.Cache)
	ruleNamed(t, a, "vue").Uses = nil
	assert.NotEmpty(t, ruleNamed(t, b, "vue").Uses)
}

func TestAssemble_AssetsOutsideOutDir(t *testing.T) {
	cfg := testConfig()
	cfg.AssetsDir = "relative/assets"

	_, err := newTestAssembler(cfg).Assemble(prodBrowser, Runtime{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryAssembly))
}

func TestMode_Labels(t *testing.T) {
	assert.Equal(t, "development/browser", devBrowser.String())
	assert.Equal(t, "production/server", prodServer.String())
}

func TestRuntimeFromOS(t *testing.T) {
	t.Setenv(TestEnvVar, "1")
	t.Setenv("NODE_ENV", "test")
	t.Setenv(SiteModeEnvVar, "build")
	t.Setenv("SITEPACK_PROBE", "x")

	rt := RuntimeFromOS()
	assert.True(t, rt.Test)
	assert.Equal(t, "test", rt.NodeEnv)
	assert.Equal(t, "build", rt.SiteMode)
	assert.Contains(t, rt.Environ, "SITEPACK_PROBE=x")

	t.Setenv(TestEnvVar, "")
	assert.False(t, RuntimeFromOS().Test)
}
