package pack

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitepack/internal/config"
	"git.home.luguber.info/inful/sitepack/internal/metrics"
	"git.home.luguber.info/inful/sitepack/internal/toolchain"
)

var (
	devBrowser  = Mode{}
	devServer   = Mode{Server: true}
	prodBrowser = Mode{Production: true}
	prodServer  = Mode{Production: true, Server: true}
)

var testVersions = toolchain.Static{
	toolchain.SelfName: "0.9.0",
	"cache-loader":     "4.1.0",
	"vue-loader":       "15.9.8",
}

func testConfig() *config.Config {
	return &config.Config{
		Version:    config.CurrentVersion,
		Context:    "/site",
		OutDir:     "/site/dist",
		AssetsDir:  "/site/dist/assets",
		PathPrefix: "/",
		CacheDir:   "/site/.sitepack",
		AppPath:    "/site/node_modules/sitepack/app",
		EnvPrefix:  config.DefaultEnvPrefix,
		CSS:        config.CSSConfig{LoaderOptions: map[string]map[string]any{}},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAssembler(cfg *config.Config, opts ...Option) *Assembler {
	base := []Option{WithVersions(testVersions), WithLogger(quietLogger())}
	return New(cfg, append(base, opts...)...)
}

func mustAssemble(t *testing.T, cfg *config.Config, mode Mode, rt Runtime) *Descriptor {
	t.Helper()
	d, err := newTestAssembler(cfg).Assemble(mode, rt)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func ruleNamed(t *testing.T, d *Descriptor, name string) *Rule {
	t.Helper()
	for _, r := range d.Rules {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("rule %q not found", name)
	return nil
}

func pluginNames(d *Descriptor) []string {
	out := make([]string, 0, len(d.Plugins))
	for _, p := range d.Plugins {
		out = append(out, p.Name)
	}
	return out
}

func pluginNamed(t *testing.T, d *Descriptor, name string) Plugin {
	t.Helper()
	for _, p := range d.Plugins {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("plugin %q not found", name)
	return Plugin{}
}

type countingRecorder struct {
	metrics.NoopRecorder
	outcomes map[metrics.ResultLabel]int
	rules    int
	plugins  int
	observed []time.Duration
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: map[metrics.ResultLabel]int{}}
}

func (c *countingRecorder) ObserveAssemblyDuration(_ string, d time.Duration) {
	c.observed = append(c.observed, d)
}

func (c *countingRecorder) IncAssemblyOutcome(_ string, r metrics.ResultLabel) { c.outcomes[r]++ }

func (c *countingRecorder) SetDescriptorSize(_ string, rules, plugins int) {
	c.rules, c.plugins = rules, plugins
}
