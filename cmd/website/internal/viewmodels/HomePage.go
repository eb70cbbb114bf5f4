package viewmodels

import (
	"html/template"

	internalmodels "github.com/adampresley/yearinreview/cmd/website/internal/models"
	"github.com/adampresley/yearinreview/pkg/showcase"
)

type HomePage struct {
	BaseViewModel
	AlbumGrid

	Showcase showcase.Showcase
	Letter   template.HTML
}

type AlbumGrid struct {
	Albums    []internalmodels.AlbumTile
	IsLoading bool
}

type AlbumGridPage struct {
	BaseViewModel
	AlbumGrid
}
