package lightboxes_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/adampresley/adamgokit/rendering"
	internalmodels "github.com/adampresley/yearinreview/cmd/website/internal/models"
	"github.com/adampresley/yearinreview/cmd/website/internal/viewmodels"
	"github.com/stretchr/testify/require"
)

func renderLightbox(t *testing.T, data viewmodels.Lightbox) string {
	t.Helper()

	var buf bytes.Buffer

	renderer, err := rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        os.DirFS("../.."),
		PagesDir:          "pages",
	})

	require.NoError(t, err)
	require.NoError(t, renderer.Render("pages/lightbox", data, &buf))

	html := buf.String()
	require.NotContains(t, html, "Rendering Error")
	require.NotContains(t, html, "<html")
	return html
}

func TestOpenLightboxFragment(t *testing.T) {
	html := renderLightbox(t, viewmodels.Lightbox{
		IsOpen:       true,
		ScrollLocked: true,
		AlbumID:      "italy",
		AlbumTitle:   "Italy",
		Index:        1,
		Position:     2,
		Total:        5,
		ImageID:      "IMG_001",
		ImageURL:     "/originals/italy/IMG_001",
		OriginalURL:  "/originals/italy/IMG_001",
		ShowSpinner:  true,
		PreloadURLs:  []string{"/originals/italy/IMG_002"},
		Thumbnails: []internalmodels.LightboxThumbnail{
			{ID: "IMG_000", Index: 0, URL: "/thumbnails/italy/IMG_000"},
			{ID: "IMG_001", Index: 1, URL: "/thumbnails/italy/IMG_001", IsCurrent: true},
		},
	})

	require.Contains(t, html, `data-open="true"`)
	require.Contains(t, html, `data-scroll-locked="true"`)
	require.Contains(t, html, "2 / 5")
	require.Contains(t, html, `<link rel="preload" as="image" href="/originals/italy/IMG_002" />`)
	require.Contains(t, html, `data-loaded-url="/lightbox/loaded?id=IMG_001"`)
	require.Contains(t, html, `class="spinner"`)
	require.Contains(t, html, `hx-get="/lightbox/jump/1"`)
	require.Contains(t, html, `href="/albums/italy/download"`)
}

func TestClosedLightboxFragment(t *testing.T) {
	html := renderLightbox(t, viewmodels.Lightbox{})

	require.Contains(t, html, `<div id="lightbox" data-open="false" data-scroll-locked="false"></div>`)
	require.NotContains(t, html, "lightbox-slot")
}
