package models

/*
AlbumTile is one cell of the album grid.
*/
type AlbumTile struct {
	ID             string
	Title          string
	Subtitle       string
	Description    string
	Layout         string
	IsLarge        bool
	IsLoading      bool
	Selectable     bool
	NumImages      int
	ImageURL       string
	SrcSet         string
	Sizes          string
	PlaceholderURL string
	OriginalURL    string
	Loading        string
	HighPriority   bool
}

type LightboxThumbnail struct {
	ID        string
	Index     int
	URL       string
	IsCurrent bool
}
