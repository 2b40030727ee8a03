package pack

import (
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitepack/internal/config"
	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/htmlrender"
	"git.home.luguber.info/inful/sitepack/internal/logfields"
	"git.home.luguber.info/inful/sitepack/internal/metrics"
	"git.home.luguber.info/inful/sitepack/internal/toolchain"
)

const devtoolDevelopment = "cheap-module-eval-source-map"

// Assembler turns a project configuration into descriptors. It holds only
// read-only collaborators and may be reused for any number of assemblies.
type Assembler struct {
	cfg      *config.Config
	renderer htmlrender.Renderer
	versions toolchain.Reporter
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

func WithRenderer(r htmlrender.Renderer) Option { return func(a *Assembler) { a.renderer = r } }

func WithVersions(r toolchain.Reporter) Option { return func(a *Assembler) { a.versions = r } }

func WithRecorder(r metrics.Recorder) Option { return func(a *Assembler) { a.recorder = r } }

func WithLogger(l *slog.Logger) Option { return func(a *Assembler) { a.logger = l } }

// New returns an Assembler for cfg. Without options it renders with the
// default template renderer, reads tool versions from the project's
// node_modules (after any pinned versions) and records no metrics.
func New(cfg *config.Config, opts ...Option) *Assembler {
	a := &Assembler{
		cfg:      cfg,
		renderer: htmlrender.NewTemplateRenderer(),
		versions: toolchain.ForProject(cfg.Context, cfg.Tools),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// assembly is the state of one descriptor build. The builder is owned by it
// and handed from step to step.
type assembly struct {
	cfg        *config.Config
	mode       Mode
	rt         Runtime
	b          *Builder
	cache      CacheIdentity
	assetsDir  string
	publicPath string
	loadersDir string
	useHash    bool
	html       string
	log        *slog.Logger
}

// Assemble builds the descriptor for one mode. On failure no descriptor is
// returned.
func (a *Assembler) Assemble(mode Mode, rt Runtime) (*Descriptor, error) {
	start := time.Now()
	log := a.logger.With(logfields.Mode(mode.Label()), logfields.Target(mode.Target()))

	d, err := a.assemble(mode, rt, log)

	a.recorder.ObserveAssemblyDuration(mode.Target(), time.Since(start))
	a.recorder.IncAssemblyOutcome(mode.Target(), metrics.Outcome(err))
	if err != nil {
		log.Debug("Assembly failed", logfields.Error(err))
		return nil, err
	}
	a.recorder.SetDescriptorSize(mode.Target(), len(d.Rules), len(d.Plugins))
	log.Info("Descriptor assembled",
		logfields.CacheID(d.Cache.Identifier),
		logfields.Count(len(d.Rules)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return d, nil
}

func (a *Assembler) assemble(mode Mode, rt Runtime, log *slog.Logger) (*Descriptor, error) {
	versions, err := toolchain.Resolve(a.versions, toolchain.Tracked)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		log.Debug("Tool version", logfields.Tool(v.Name), slog.String("version", v.Version))
	}

	assetsDir, err := filepath.Rel(a.cfg.OutDir, a.cfg.AssetsDir)
	if err != nil {
		return nil, ferrors.AssemblyError("assets directory is not relative to output directory").WithCause(err).
			WithContext("out_dir", a.cfg.OutDir).
			WithContext("assets_dir", a.cfg.AssetsDir).
			Build()
	}

	asm := &assembly{
		cfg:        a.cfg,
		mode:       mode,
		rt:         rt,
		b:          NewBuilder(),
		assetsDir:  filepath.ToSlash(assetsDir),
		publicPath: publicPath(a.cfg.PathPrefix),
		loadersDir: filepath.Join(packageRoot(a.cfg.AppPath), "lib", "webpack", "loaders"),
		useHash:    mode.Production && !rt.Test,
		log:        log,
	}

	if !mode.Production {
		source := a.cfg.HTMLTemplate
		if source == "" {
			source = htmlrender.DefaultTemplate
		}
		asm.html, err = a.renderer.Render(source, htmlrender.Slots{htmlrender.SlotApp: htmlrender.MountPlaceholder})
		if err != nil {
			return nil, err
		}
	}

	asm.cache = DeriveCacheIdentity(versions, a.cfg.Context, mode, a.cfg.Customize)
	log.Debug("Cache identity derived", logfields.CacheID(asm.cache.Identifier))

	asm.applyBase()
	asm.addRules()
	asm.buildEnv()
	asm.bindPlugins()

	return asm.b.Freeze()
}

// packageRoot is the installed sitepack package that ships the runtime app.
func packageRoot(appPath string) string {
	return filepath.Dir(appPath)
}

// applyBase fills mode, output and resolution settings.
func (a *assembly) applyBase() {
	d := a.b.mutable()
	d.Mode = a.mode.Label()
	d.Target = a.mode.Target()
	d.Context = a.cfg.Context
	d.Cache = a.cache
	if !a.mode.Production {
		d.Devtool = devtoolDevelopment
	}

	filename := "[name].js"
	if a.useHash {
		filename = "[name].[contenthash:8].js"
	}
	d.Output = Output{
		Path:          a.cfg.OutDir,
		PublicPath:    a.publicPath,
		Filename:      path.Join(a.assetsDir, "js", filename),
		ChunkFilename: path.Join(a.assetsDir, "js", filename),
		Pathinfo:      a.rt.NodeEnv == "test",
	}

	src := filepath.Join(a.cfg.Context, "src")
	d.Resolve.Symlinks = true
	d.Resolve.Alias.Set("~", src)
	d.Resolve.Alias.Set("@", src)
	d.Resolve.Alias.Set("sitepack$", filepath.Join(a.cfg.AppPath, "index.js"))
	if a.cfg.RuntimeCompiler {
		d.Resolve.Alias.Set("vue$", "vue/dist/vue.esm.js")
	}
	d.Resolve.Extensions = []string{".js", ".vue"}
	d.Resolve.Modules = []string{filepath.Join(packageRoot(a.cfg.AppPath), "node_modules"), "node_modules"}

	d.ResolveLoader = ResolveLoader{
		Symlinks: true,
		Modules:  []string{a.loadersDir, filepath.Join(packageRoot(a.cfg.AppPath), "node_modules"), "node_modules"},
	}
	d.NoParse = MustPattern(`^(vue|vue-router)$`)
}
