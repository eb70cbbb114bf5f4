package viewmodels

import (
	internalmodels "github.com/adampresley/yearinreview/cmd/website/internal/models"
)

type Lightbox struct {
	BaseViewModel

	IsOpen       bool
	ScrollLocked bool
	AlbumID      string
	AlbumTitle   string
	Index        int
	Position     int
	Total        int
	ImageID      string
	ImageURL     string
	OriginalURL  string
	ShowSpinner  bool
	PreloadURLs  []string
	Thumbnails   []internalmodels.LightboxThumbnail
}
