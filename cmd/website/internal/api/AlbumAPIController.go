package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/adampresley/yearinreview/pkg/services"
)

type AlbumAPIHandlers interface {
	GetAlbums(w http.ResponseWriter, r *http.Request)
	RefreshAlbum(w http.ResponseWriter, r *http.Request)
}

type AlbumAPIControllerConfig struct {
	AlbumService services.AlbumServicer
}

type AlbumAPIController struct {
	albumService services.AlbumServicer
}

type AlbumsResponse struct {
	Albums    []models.ResolvedAlbum `json:"albums"`
	IsLoading bool                   `json:"isLoading"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewAlbumAPIController(config AlbumAPIControllerConfig) AlbumAPIController {
	return AlbumAPIController{
		albumService: config.AlbumService,
	}
}

/*
GET /api/albums
*/
func (c AlbumAPIController) GetAlbums(w http.ResponseWriter, r *http.Request) {
	albums := c.albumService.GetAlbums()

	result := AlbumsResponse{
		Albums:    albums,
		IsLoading: !c.albumService.InitialLoadComplete(),
	}

	for _, album := range albums {
		if album.IsLoading {
			result.IsLoading = true
		}
	}

	httphelpers.JsonOK(w, result)
}

/*
POST /api/albums/{id}/refresh
*/
func (c AlbumAPIController) RefreshAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		album models.ResolvedAlbum
	)

	id := httphelpers.GetFromRequest[string](r, "id")

	if album, err = c.albumService.Refresh(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			httphelpers.WriteJson(w, http.StatusNotFound, ErrorResponse{Error: "album not found"})
			return
		}

		slog.Error("error refreshing album", "error", err, "albumID", id)
		httphelpers.WriteJson(w, http.StatusInternalServerError, ErrorResponse{Error: "error refreshing album"})
		return
	}

	httphelpers.JsonOK(w, album)
}
