package home

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	internalmodels "github.com/adampresley/yearinreview/cmd/website/internal/models"
	"github.com/adampresley/yearinreview/cmd/website/internal/viewmodels"
	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/adampresley/yearinreview/pkg/services"
	"github.com/adampresley/yearinreview/pkg/showcase"
)

const (
	LargeTileWidth = 800
	SmallTileWidth = 500

	eagerTiles    = 4
	priorityTiles = 2

	largeTileSizes = "(max-width: 768px) 100vw, 66vw"
	smallTileSizes = "(max-width: 768px) 100vw, 33vw"
)

type HomeHandlers interface {
	HomePage(w http.ResponseWriter, r *http.Request)
	AlbumGrid(w http.ResponseWriter, r *http.Request)
	RefreshAlbum(w http.ResponseWriter, r *http.Request)
}

type HomeControllerConfig struct {
	AlbumService  services.AlbumServicer
	Builder       cdn.Builder
	LetterService services.LetterServicer
	Renderer      rendering.TemplateRenderer
	Showcase      showcase.Showcase
}

type HomeController struct {
	albumService  services.AlbumServicer
	builder       cdn.Builder
	letterService services.LetterServicer
	renderer      rendering.TemplateRenderer
	showcase      showcase.Showcase
}

func NewHomeController(config HomeControllerConfig) HomeController {
	return HomeController{
		albumService:  config.AlbumService,
		builder:       config.Builder,
		letterService: config.LetterService,
		renderer:      config.Renderer,
		showcase:      config.Showcase,
	}
}

/*
GET /
*/
func (c HomeController) HomePage(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			Message: "",
			IsHtmx:  httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/lightbox.js"},
			},
		},
		AlbumGrid: c.albumGrid(),
		Showcase:  c.showcase,
		Letter:    c.letterService.Letter(),
	}

	c.renderer.Render(pageName, viewData, w)
}

/*
GET /albums
*/
func (c HomeController) AlbumGrid(w http.ResponseWriter, r *http.Request) {
	c.renderer.Render("pages/album-grid", c.albumGridPage(r), w)
}

/*
POST /albums/{id}/refresh
*/
func (c HomeController) RefreshAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	id := httphelpers.GetFromRequest[string](r, "id")

	if err = c.albumService.RefreshAsync(context.WithoutCancel(r.Context()), id); err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			httphelpers.WriteText(w, http.StatusNotFound, "album not found")
			return
		}

		slog.Error("error refreshing album", "error", err, "albumID", id)
		httphelpers.TextInternalServerError(w, "Error refreshing album")
		return
	}

	c.renderer.Render("pages/album-grid", c.albumGridPage(r), w)
}

func (c HomeController) albumGridPage(r *http.Request) viewmodels.AlbumGridPage {
	return viewmodels.AlbumGridPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		AlbumGrid: c.albumGrid(),
	}
}

func (c HomeController) albumGrid() viewmodels.AlbumGrid {
	albums := c.albumService.GetAlbums()

	result := viewmodels.AlbumGrid{
		Albums:    BuildTiles(c.builder, albums),
		IsLoading: !c.albumService.InitialLoadComplete(),
	}

	for _, album := range albums {
		if album.IsLoading {
			result.IsLoading = true
		}
	}

	return result
}

/*
BuildTiles converts resolved albums into grid tiles in display order.
*/
func BuildTiles(builder cdn.Builder, albums []models.ResolvedAlbum) []internalmodels.AlbumTile {
	result := make([]internalmodels.AlbumTile, 0, len(albums))

	for index, album := range albums {
		result = append(result, convertAlbumToTile(builder, album, index))
	}

	return result
}

func convertAlbumToTile(builder cdn.Builder, album models.ResolvedAlbum, index int) internalmodels.AlbumTile {
	width := SmallTileWidth
	sizes := smallTileSizes

	if album.IsLarge() {
		width = LargeTileWidth
		sizes = largeTileSizes
	}

	result := internalmodels.AlbumTile{
		ID:           album.ID,
		Title:        album.Title,
		Subtitle:     album.Subtitle,
		Description:  album.Description,
		Layout:       album.Layout,
		IsLarge:      album.IsLarge(),
		IsLoading:    album.IsLoading,
		Selectable:   album.HasImages(),
		NumImages:    len(album.Images),
		Sizes:        sizes,
		Loading:      "lazy",
		HighPriority: index < priorityTiles,
	}

	if index < eagerTiles {
		result.Loading = "eager"
	}

	feature := album.FeatureImage
	if feature == "" && album.HasImages() {
		feature = album.Images[0]
	}

	if feature == "" {
		return result
	}

	result.OriginalURL = services.OriginalURL(album.Tag, feature)
	result.ImageURL = result.OriginalURL

	if builder.Configured() {
		options := cdn.Options{Width: width, Crop: cdn.CropFill, Gravity: cdn.GravityAuto, Quality: "auto"}

		result.ImageURL = builder.OptimizedURL(feature, options)
		result.SrcSet = builder.SrcSet(feature, cdn.ResponsiveWidths(width), options)
		result.PlaceholderURL = builder.PlaceholderURL(feature, options)
	}

	return result
}
