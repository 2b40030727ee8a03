// Package htmlrender renders the page shell used by the development HTML plugin.
//
// Templates use ${name} placeholders. Known slots (app, head, htmlAttrs, bodyAttrs,
// scripts) are replaced by their value or removed when unset; any other ${...}
// sequence is left untouched so client-side template literals survive.
package htmlrender

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
)

// MountPlaceholder is the markup handed to the template's app slot.
const MountPlaceholder = `<div id="app"></div>`

// DefaultTemplate is used when the project does not supply its own shell.
const DefaultTemplate = `<!DOCTYPE html>
<html ${htmlAttrs}>
  <head>
    ${head}
  </head>
  <body ${bodyAttrs}>
    ${app}
    ${scripts}
  </body>
</html>
`

// Known slot names.
const (
	SlotApp       = "app"
	SlotHead      = "head"
	SlotHTMLAttrs = "htmlAttrs"
	SlotBodyAttrs = "bodyAttrs"
	SlotScripts   = "scripts"
)

var knownSlots = map[string]bool{
	SlotApp: true, SlotHead: true, SlotHTMLAttrs: true, SlotBodyAttrs: true, SlotScripts: true,
}

var placeholderRe = regexp.MustCompile(`\$\{\s*(\w+)\s*\}`)

// Slots maps slot names to the markup substituted for them.
type Slots map[string]string

// Renderer turns a template source into the final HTML document.
type Renderer interface {
	Render(source string, slots Slots) (string, error)
}

// TemplateRenderer is the default Renderer. When MountID is set the rendered
// document must contain an element with that id.
type TemplateRenderer struct {
	MountID string
}

// NewTemplateRenderer returns a renderer that requires the #app mount point.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{MountID: "app"}
}

func (r *TemplateRenderer) Render(source string, slots Slots) (string, error) {
	if strings.TrimSpace(source) == "" {
		source = DefaultTemplate
	}
	out := placeholderRe.ReplaceAllStringFunc(source, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if !knownSlots[name] {
			return m
		}
		return slots[name]
	})
	if r.MountID == "" {
		return out, nil
	}
	ok, err := hasElementID(out, r.MountID)
	if err != nil {
		return "", ferrors.RenderError("cannot parse rendered HTML template").WithCause(err).Build()
	}
	if !ok {
		return "", ferrors.RenderError(fmt.Sprintf("rendered HTML template has no element with id %q", r.MountID)).
			WithContext("hint", "keep the ${app} placeholder inside <body>").
			Build()
	}
	return out, nil
}

func hasElementID(doc, id string) (bool, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return false, err
	}
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = true
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found, nil
}
