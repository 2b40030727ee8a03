package pack

import (
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/sitepack/internal/logfields"
)

// Loader identifiers as the bundler resolves them.
const (
	loaderCache     = "cache-loader"
	loaderVue       = "vue-loader"
	loaderBabel     = "babel-loader"
	loaderURL       = "url-loader"
	loaderFile      = "file-loader"
	loaderJSON      = "json-loader"
	loaderYAML      = "yaml-loader"
	babelPresetApp  = "@vue/babel-preset-app"
	urlInlineLimit  = 10000
	pageQueryLoader = "page-query"
	staticQueryLoad = "static-query"
)

// addRules registers every module rule in its fixed order.
func (a *assembly) addRules() {
	a.addVueRule()
	a.addScriptRule()
	for _, d := range Dialects {
		a.specializeStylesheetRule(d)
	}
	a.addAssetRule("images", MustPattern(`\.(png|jpe?g|gif)(\?.*)?$`), loaderURL, "img")
	a.addAssetRule("svg", MustPattern(`\.(svg)(\?.*)?$`), loaderFile, "img")
	a.addAssetRule("media", MustPattern(`\.(mp4|webm|ogg|mp3|wav|flac|aac)(\?.*)?$`), loaderURL, "media")
	a.addAssetRule("fonts", MustPatternFlags(`\.(woff2?|eot|ttf|otf)(\?.*)?$`, "i"), loaderURL, "fonts")

	yml := a.b.Rule("yaml")
	yml.Test = MustPattern(`\.ya?ml$`)
	yml.use("json", loaderJSON, nil).
		use("yaml", loaderYAML, nil)

	a.addQueryRule("graphql", pageQueryLoader)
	a.addQueryRule("page-query", pageQueryLoader)
	a.addQueryRule("static-query", staticQueryLoad)

	for _, r := range a.b.d.Rules {
		a.log.Debug("Rule added", logfields.Rule(r.Name))
	}
}

func (a *assembly) cacheLoaderOptions() Options {
	return Options{
		"cacheDirectory":  a.cache.Directory,
		"cacheIdentifier": a.cache.Identifier,
	}
}

func (a *assembly) addVueRule() {
	r := a.b.Rule("vue")
	r.Test = MustPattern(`\.vue$`)
	vueOpts := Options{
		"compilerOptions": Options{
			"preserveWhitespace": false,
			"modules":            []string{"html", "assets"},
		},
	}
	for k, v := range a.cacheLoaderOptions() {
		vueOpts[k] = v
	}
	r.use("cache-loader", loaderCache, a.cacheLoaderOptions()).
		use("vue-loader", loaderVue, vueOpts)
}

func (a *assembly) addScriptRule() {
	r := a.b.Rule("js")
	r.Test = MustPattern(`\.jsx?$`)
	r.Exclude = []Matcher{ScriptExclusion{
		AppPath:               a.cfg.AppPath,
		TranspileDependencies: a.cfg.TranspileDependencies,
	}}
	r.use("cache-loader", loaderCache, a.cacheLoaderOptions()).
		use("babel-loader", loaderBabel, Options{"presets": []string{babelPresetApp}})
}

// addAssetRule registers a static asset rule emitting under <assets>/<dir>.
func (a *assembly) addAssetRule(name string, test *Pattern, loader, dir string) {
	opts := Options{"name": path.Join(a.assetsDir, dir, a.assetName())}
	if loader == loaderURL {
		opts["limit"] = urlInlineLimit
	}
	r := a.b.Rule(name)
	r.Test = test
	r.use(loader, loader, opts)
}

// addQueryRule registers a rule for custom blocks inside single-file components.
func (a *assembly) addQueryRule(kind, loader string) {
	r := a.b.Rule(kind)
	r.ResourceQuery = MustPattern(`blockType=(` + kind + `)`)
	r.use("babel-loader", loaderBabel, Options{"presets": []string{babelPresetApp}}).
		use(kind+"-loader", filepath.Join(a.loadersDir, loader), nil)
}

func (a *assembly) assetName() string {
	if a.useHash {
		return "[name].[hash:8].[ext]"
	}
	return "[name].[ext]"
}
