package home_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/yearinreview/cmd/website/internal/home"
	"github.com/adampresley/yearinreview/cmd/website/internal/viewmodels"
	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/showcase"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *rendering.GoTemplateRenderer {
	t.Helper()

	renderer, err := rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        os.DirFS("../.."),
		PagesDir:          "pages",
	})

	require.NoError(t, err)
	return renderer
}

func TestHomePageRendersInsideLayout(t *testing.T) {
	var buf bytes.Buffer

	data := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/lightbox.js"},
			},
		},
		AlbumGrid: viewmodels.AlbumGrid{
			Albums: home.BuildTiles(cdn.NewBuilder(cdn.BuilderConfig{CloudName: "demo"}), albums()),
		},
		Showcase: showcase.Showcase{
			Hero:    showcase.Hero{Title: "Our Year", Subtitle: "2025"},
			Closing: showcase.Closing{Title: "Thanks"},
			Footer:  "See you next year",
		},
		Letter: "<p>Dear friends</p>",
	}

	require.NoError(t, newRenderer(t).Render("pages/home", data, &buf))

	html := buf.String()
	require.NotContains(t, html, "Rendering Error")
	require.Contains(t, html, "<!DOCTYPE html>")
	require.Contains(t, html, "<title>Our Year</title>")
	require.Contains(t, html, `<script type="module" src="/static/js/lightbox.js"></script>`)
	require.Contains(t, html, "<p>Dear friends</p>")
	require.Contains(t, html, `id="album-grid"`)
	require.Contains(t, html, `data-original="/originals/italy/IMG_italy"`)
	require.Contains(t, html, `<div id="lightbox"></div>`)
	require.NotContains(t, html, `hx-trigger="every 1s"`)
}

func TestTileFallsBackToOriginalOnlyOnce(t *testing.T) {
	var buf bytes.Buffer

	data := viewmodels.AlbumGridPage{
		AlbumGrid: viewmodels.AlbumGrid{
			Albums: home.BuildTiles(cdn.NewBuilder(cdn.BuilderConfig{CloudName: "demo"}), albums()),
		},
	}

	require.NoError(t, newRenderer(t).Render("pages/album-grid", data, &buf))

	html := buf.String()
	require.Contains(t, html, `onerror="if (!this.dataset.fallback) { this.dataset.fallback = '1';`)
	require.NotContains(t, html, "this.src !== this.dataset.original")
}

func TestAlbumGridFragmentPollsWhileLoading(t *testing.T) {
	var buf bytes.Buffer

	data := viewmodels.AlbumGridPage{
		AlbumGrid: viewmodels.AlbumGrid{
			Albums:    home.BuildTiles(cdn.NewBuilder(cdn.BuilderConfig{}), albums()),
			IsLoading: true,
		},
	}

	require.NoError(t, newRenderer(t).Render("pages/album-grid", data, &buf))

	html := buf.String()
	require.NotContains(t, html, "Rendering Error")
	require.NotContains(t, html, "<html")
	require.Contains(t, html, `hx-trigger="every 1s"`)
	require.Contains(t, html, `hx-get="/albums/italy/lightbox?index=0"`)
}
