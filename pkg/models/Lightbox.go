package models

/*
LightboxState is one visitor's open lightbox. It is kept on the server;
the visitor's cookie only carries ID.
*/
type LightboxState struct {
	ID        string
	AlbumID   string
	Images    []string
	Index     int
	Loaded    bool
	Failed    []string
	Delivered []string
	Preloaded []string
}
