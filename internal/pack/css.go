package pack

import (
	"maps"

	"git.home.luguber.info/inful/sitepack/internal/logfields"
)

const (
	loaderExtractCSS = "mini-css-extract-plugin/dist/loader"
	loaderVueStyle   = "vue-style-loader"
	loaderCSS        = "css-loader"
	loaderPostCSS    = "postcss-loader"
	autoprefixer     = "autoprefixer"
	localIdentName   = "[local]_[hash:base64:8]"
)

// Dialect is a stylesheet flavor with its own file pattern and optional
// preprocessing loader.
type Dialect struct {
	Name   string
	Test   string
	Loader string
}

// Dialects are specialized in this order.
var Dialects = []Dialect{
	{Name: "css", Test: `\.css$`},
	{Name: "postcss", Test: `\.p(ost)?css$`},
	{Name: "scss", Test: `\.scss$`, Loader: "sass-loader"},
	{Name: "sass", Test: `\.sass$`, Loader: "sass-loader"},
	{Name: "less", Test: `\.less$`, Loader: "less-loader"},
	{Name: "stylus", Test: `\.styl(us)?$`, Loader: "stylus-loader"},
}

// specializeStylesheetRule adds one rule for the dialect with a module-scoped
// branch first and a plain branch second; the first matching branch wins.
func (a *assembly) specializeStylesheetRule(d Dialect) {
	r := a.b.Rule(d.Name)
	r.Test = MustPattern(d.Test)

	modules := r.branch("modules")
	modules.ResourceQuery = MustPattern(`module`)
	a.fillStylesheetBranch(modules, d, true)
	a.fillStylesheetBranch(r.branch("normal"), d, false)

	a.log.Debug("Stylesheet rule specialized", logfields.Dialect(d.Name))
}

func (a *assembly) fillStylesheetBranch(r *Rule, d Dialect, modules bool) {
	prod := a.mode.Production
	if !a.mode.Server {
		if prod {
			r.use("extract-css-loader", loaderExtractCSS, nil)
		} else {
			r.use("vue-style-loader", loaderVueStyle, nil)
		}
	}

	cssOpts := Options{
		"modules":          modules,
		"exportOnlyLocals": a.mode.Server,
		"localIdentName":   localIdentName,
		"importLoaders":    1,
		"sourceMap":        !prod,
	}
	maps.Copy(cssOpts, a.cfg.CSS.LoaderOption("css"))
	r.use("css-loader", loaderCSS, cssOpts)

	postOverrides := a.cfg.CSS.LoaderOption("postcss")
	postOpts := Options{"sourceMap": !prod}
	maps.Copy(postOpts, postOverrides)
	postOpts["plugins"] = postcssPlugins(postOverrides["plugins"])
	r.use("postcss-loader", loaderPostCSS, postOpts)

	if d.Loader != "" {
		r.use(d.Loader, d.Loader, Options(maps.Clone(a.cfg.CSS.LoaderOption(d.Name))))
	}
}

// postcssPlugins returns a fresh list of the project plugins with the
// autoprefixer appended last.
func postcssPlugins(raw any) []any {
	project, _ := raw.([]any)
	out := make([]any, 0, len(project)+1)
	out = append(out, project...)
	return append(out, autoprefixer)
}
