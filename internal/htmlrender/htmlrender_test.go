package htmlrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
)

func TestRender_DefaultTemplate(t *testing.T) {
	out, err := NewTemplateRenderer().Render("", Slots{SlotApp: MountPlaceholder})
	require.NoError(t, err)
	assert.Contains(t, out, `<body >`)
	assert.Contains(t, out, MountPlaceholder)
	assert.NotContains(t, out, "${")
}

func TestRender_CustomTemplateKeepsUnknownPlaceholders(t *testing.T) {
	src := `<html><head><title>${ title }</title>${head}</head><body>${ app }</body></html>`
	out, err := NewTemplateRenderer().Render(src, Slots{SlotApp: MountPlaceholder, SlotHead: `<meta charset="utf-8">`})
	require.NoError(t, err)
	assert.Equal(t, `<html><head><title>${ title }</title><meta charset="utf-8"></head><body><div id="app"></div></body></html>`, out)
}

func TestRender_MissingMountPoint(t *testing.T) {
	_, err := NewTemplateRenderer().Render(`<html><body><main></main></body></html>`, Slots{SlotApp: MountPlaceholder})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))
}

func TestRender_NoMountCheck(t *testing.T) {
	r := &TemplateRenderer{}
	out, err := r.Render(`<p>${app}</p>`, nil)
	require.NoError(t, err)
	assert.Equal(t, `<p></p>`, out)
}
