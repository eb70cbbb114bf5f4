package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/adampresley/yearinreview/pkg/services"
)

type MediaHandlers interface {
	Original(w http.ResponseWriter, r *http.Request)
	Thumbnail(w http.ResponseWriter, r *http.Request)
	DownloadAlbum(w http.ResponseWriter, r *http.Request)
}

type MediaControllerConfig struct {
	AlbumService     services.AlbumServicer
	OriginalStore    services.OriginalStorer
	ThumbnailService services.ThumbnailServicer
	ZipService       services.ZipServicer
}

type MediaController struct {
	albumService     services.AlbumServicer
	originalStore    services.OriginalStorer
	thumbnailService services.ThumbnailServicer
	zipService       services.ZipServicer
}

func NewMediaController(config MediaControllerConfig) MediaController {
	return MediaController{
		albumService:     config.AlbumService,
		originalStore:    config.OriginalStore,
		thumbnailService: config.ThumbnailService,
		zipService:       config.ZipService,
	}
}

/*
GET /originals/{tag}/{id...}
*/
func (c MediaController) Original(w http.ResponseWriter, r *http.Request) {
	var (
		err      error
		original services.Original
	)

	tag, id, ok := c.imageFromRequest(r)
	if !ok {
		httphelpers.WriteText(w, http.StatusNotFound, "image not found")
		return
	}

	if original, err = c.originalStore.Open(r.Context(), tag, id); err != nil {
		if errors.Is(err, services.ErrOriginalNotFound) {
			httphelpers.WriteText(w, http.StatusNotFound, "image not found")
			return
		}

		slog.Error("error opening original image", "error", err, "tag", tag, "id", id)
		httphelpers.TextInternalServerError(w, "Failed to load image")
		return
	}

	defer original.Body.Close()

	w.Header().Set("Content-Type", original.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if original.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", original.Size))
	}

	_, _ = io.Copy(w, original.Body)
}

/*
GET /thumbnails/{tag}/{id...}
*/
func (c MediaController) Thumbnail(w http.ResponseWriter, r *http.Request) {
	var (
		err error
		b   []byte
	)

	tag, id, ok := c.imageFromRequest(r)
	if !ok {
		httphelpers.WriteText(w, http.StatusNotFound, "image not found")
		return
	}

	if b, err = c.thumbnailService.Thumbnail(r.Context(), tag, id); err != nil {
		if errors.Is(err, services.ErrOriginalNotFound) {
			httphelpers.WriteText(w, http.StatusNotFound, "image not found")
			return
		}

		slog.Error("error creating thumbnail", "error", err, "tag", tag, "id", id)
		httphelpers.TextInternalServerError(w, "Failed to load thumbnail")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(b)))
	_, _ = w.Write(b)
}

/*
GET /albums/{id}/download
*/
func (c MediaController) DownloadAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		album models.ResolvedAlbum
	)

	id := httphelpers.GetFromRequest[string](r, "id")

	if album, err = c.albumService.GetAlbum(id); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "album not found")
		return
	}

	if !album.HasImages() {
		httphelpers.WriteText(w, http.StatusNotFound, "album has no images")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", c.zipService.Filename(album)))

	if _, err = c.zipService.WriteAlbum(r.Context(), album, w); err != nil {
		slog.Error("error streaming album zip", "error", err, "albumID", id)
	}
}

/*
imageFromRequest only accepts tags that belong to a configured album, and
ids that cannot climb out of the tag's folder.
*/
func (c MediaController) imageFromRequest(r *http.Request) (string, string, bool) {
	tag := r.PathValue("tag")
	id := r.PathValue("id")

	if tag == "" || id == "" || strings.Contains(id, "..") || strings.HasPrefix(id, "/") {
		return "", "", false
	}

	tags := slices.Map(c.albumService.GetAlbums(), func(album models.ResolvedAlbum, index int) string {
		return album.Tag
	})

	return tag, id, slices.IsInSlice(tag, tags)
}
