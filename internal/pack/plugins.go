package pack

import (
	"path"

	"git.home.luguber.info/inful/sitepack/internal/logfields"
)

// Plugin constructor modules.
const (
	pluginProgress      = "webpack/lib/ProgressPlugin"
	pluginVueLoader     = "vue-loader/lib/plugin"
	pluginCaseSensitive = "case-sensitive-paths-webpack-plugin"
	pluginHTML          = "html-webpack-plugin"
	pluginDefine        = "webpack/lib/DefinePlugin"
	pluginExtractCSS    = "mini-css-extract-plugin"
)

// Split-chunk limits for the page data group, in bytes.
const (
	dataChunkMinSize = 5000
	dataChunkMaxSize = 60000
)

// bindPlugins adds plugins in their fixed order and the optimization
// settings that go with them. It expects buildEnv to have run.
func (a *assembly) bindPlugins() {
	if a.rt.Interactive && !a.rt.Test {
		a.b.Plugin("progress", pluginProgress)
	}
	a.b.Plugin("vue-loader", pluginVueLoader)
	a.b.Plugin("case-sensitive-paths", pluginCaseSensitive)

	if !a.mode.Production {
		a.b.Plugin("html", pluginHTML, Options{
			"minify":          true,
			"templateContent": a.html,
		})
	}

	a.b.Plugin("injections", pluginDefine, a.b.d.Env)

	d := a.b.mutable()
	if a.mode.Production && !a.mode.Server {
		a.b.Plugin("extract-css", pluginExtractCSS, Options{
			"filename": path.Join(a.assetsDir, "css", a.styleFilename()),
		})
		d.Optimization.SplitChunks = &SplitChunks{CacheGroups: map[string]*CacheGroup{
			"data": {
				RequestPrefix: dataDir(a.cfg.CacheDir),
				Name:          false,
				Chunks:        "all",
				MinSize:       dataChunkMinSize,
				MaxSize:       dataChunkMaxSize,
			},
		}}
	}

	if a.rt.Test {
		minimize := false
		d.Optimization.Minimize = &minimize
	}

	for _, p := range d.Plugins {
		a.log.Debug("Plugin bound", logfields.Plugin(p.Name))
	}
}

func (a *assembly) styleFilename() string {
	if a.useHash {
		return "styles.[contenthash:8].css"
	}
	return "styles.css"
}
