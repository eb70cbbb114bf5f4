package lightboxes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/sessions"
	internalmodels "github.com/adampresley/yearinreview/cmd/website/internal/models"
	"github.com/adampresley/yearinreview/cmd/website/internal/viewmodels"
	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/lightbox"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/adampresley/yearinreview/pkg/services"
)

const (
	pageName       = "pages/lightbox"
	thumbnailWidth = 160
)

type LightboxHandlers interface {
	Open(w http.ResponseWriter, r *http.Request)
	Next(w http.ResponseWriter, r *http.Request)
	Previous(w http.ResponseWriter, r *http.Request)
	Jump(w http.ResponseWriter, r *http.Request)
	Key(w http.ResponseWriter, r *http.Request)
	ImageFailed(w http.ResponseWriter, r *http.Request)
	ImageLoaded(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
}

type LightboxControllerConfig struct {
	AlbumService   services.AlbumServicer
	Builder        cdn.Builder
	DisplayWidth   int
	Renderer       rendering.TemplateRenderer
	SessionService sessions.Session[string]
	SessionStore   lightbox.SessionStorer
}

type LightboxController struct {
	albumService   services.AlbumServicer
	builder        cdn.Builder
	displayWidth   int
	renderer       rendering.TemplateRenderer
	sessionService sessions.Session[string]
	sessionStore   lightbox.SessionStorer
}

func NewLightboxController(config LightboxControllerConfig) LightboxController {
	return LightboxController{
		albumService:   config.AlbumService,
		builder:        config.Builder,
		displayWidth:   config.DisplayWidth,
		renderer:       config.Renderer,
		sessionService: config.SessionService,
		sessionStore:   config.SessionStore,
	}
}

/*
GET /albums/{id}/lightbox
*/
func (c LightboxController) Open(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		album models.ResolvedAlbum
	)

	id := httphelpers.GetFromRequest[string](r, "id")
	index := httphelpers.GetFromRequest[int](r, "index")

	if album, err = c.albumService.GetAlbum(id); err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			httphelpers.WriteText(w, http.StatusNotFound, "album not found")
			return
		}

		slog.Error("error getting album for lightbox", "error", err, "albumID", id)
		httphelpers.TextInternalServerError(w, "Error opening album")
		return
	}

	session := c.newSession(album)
	session.navigator.Open(album.Images, index)

	c.respond(w, r, session)
}

/*
GET /lightbox/next
*/
func (c LightboxController) Next(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	session.navigator.Next()
	c.respond(w, r, session)
}

/*
GET /lightbox/previous
*/
func (c LightboxController) Previous(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	session.navigator.Previous()
	c.respond(w, r, session)
}

/*
GET /lightbox/jump/{index}
*/
func (c LightboxController) Jump(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	session.navigator.JumpTo(httphelpers.GetFromRequest[int](r, "index"))
	c.respond(w, r, session)
}

/*
GET /lightbox/key
*/
func (c LightboxController) Key(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	key := httphelpers.GetFromRequest[string](r, "key")

	/*
	 * Keys are ignored while open. A closed session still answers with the
	 * closed fragment so a stale page drops its overlay and scroll lock.
	 */
	if !session.navigator.HandleKey(key) && session.navigator.IsOpen() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	c.respond(w, r, session)
}

/*
POST /lightbox/failed
*/
func (c LightboxController) ImageFailed(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	id := httphelpers.GetFromRequest[string](r, "id")

	if session.navigator.IsOpen() && id != "" {
		slog.Warn("cdn delivery failed. using original", "albumID", session.album.ID, "imageID", id)
		session.navigator.MarkFailed(id)
	}

	c.respond(w, r, session)
}

/*
POST /lightbox/loaded
*/
func (c LightboxController) ImageLoaded(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	session.navigator.ImageLoaded(httphelpers.GetFromRequest[string](r, "id"))

	c.persist(w, r, session)
	w.WriteHeader(http.StatusNoContent)
}

/*
DELETE /lightbox
*/
func (c LightboxController) Close(w http.ResponseWriter, r *http.Request) {
	session := c.restore(r)
	session.navigator.Close()
	c.respond(w, r, session)
}

type lightboxSession struct {
	album     models.ResolvedAlbum
	navigator *lightbox.Navigator
	preloads  *lightbox.URLCollector
	scroll    *scrollState
}

type scrollState struct {
	locked bool
}

func (s *scrollState) Lock() {
	s.locked = true
}

func (s *scrollState) Unlock() {
	s.locked = false
}

func (c LightboxController) newSession(album models.ResolvedAlbum) lightboxSession {
	result := lightboxSession{
		album:    album,
		preloads: &lightbox.URLCollector{},
		scroll:   &scrollState{},
	}

	result.navigator = lightbox.NewNavigator(lightbox.NavigatorConfig{
		Builder:      c.builder,
		DisplayWidth: c.displayWidth,
		OriginalURL: func(id string) string {
			return services.OriginalURL(album.Tag, id)
		},
		Preloader:    result.preloads,
		ScrollLocker: result.scroll,
	})

	return result
}

/*
restore rebuilds the visitor's navigator from the state the session
middleware put on the request. A state whose album no longer exists
restores as closed.
*/
func (c LightboxController) restore(r *http.Request) lightboxSession {
	state := viewmodels.GetLightboxStateFromContext(r)

	album, err := c.albumService.GetAlbum(state.AlbumID)
	if err != nil {
		return c.newSession(models.ResolvedAlbum{})
	}

	result := c.newSession(album)
	result.navigator.Restore(*state)
	result.scroll.locked = result.navigator.IsOpen()

	return result
}

func (c LightboxController) respond(w http.ResponseWriter, r *http.Request, session lightboxSession) {
	c.persist(w, r, session)

	if err := c.renderer.Render(pageName, c.buildViewModel(r, session), w); err != nil {
		slog.Error("error rendering lightbox", "error", err)
	}
}

/*
persist stores an open session under the visitor's id, issuing a new id
cookie when needed. A closed session is removed along with its cookie.
*/
func (c LightboxController) persist(w http.ResponseWriter, r *http.Request, session lightboxSession) {
	var (
		err error
	)

	current := viewmodels.GetLightboxStateFromContext(r)

	if !session.navigator.IsOpen() {
		if current.ID != "" {
			c.sessionStore.Delete(current.ID)
		}

		if err = c.sessionService.Destroy(w, r); err != nil {
			slog.Error("error clearing lightbox session", "error", err)
		}

		return
	}

	state := session.navigator.State()
	state.AlbumID = session.album.ID
	state.ID = current.ID

	if state.ID == "" {
		state.ID = c.sessionStore.NewID()
	}

	c.sessionStore.Put(state)

	if state.ID == current.ID {
		return
	}

	if err = c.sessionService.Set(r, state.ID); err != nil {
		slog.Error("error setting lightbox session", "error", err)
	}

	if err = c.sessionService.Save(w, r); err != nil {
		slog.Error("error saving session", "error", err)
	}
}

func (c LightboxController) buildViewModel(r *http.Request, session lightboxSession) viewmodels.Lightbox {
	nav := session.navigator

	result := viewmodels.Lightbox{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		IsOpen:       nav.IsOpen(),
		ScrollLocked: session.scroll.locked,
		PreloadURLs:  session.preloads.URLs,
		Thumbnails:   []internalmodels.LightboxThumbnail{},
	}

	if !nav.IsOpen() {
		return result
	}

	result.AlbumID = session.album.ID
	result.AlbumTitle = session.album.Title
	result.Index = nav.Index()
	result.Position = nav.Index() + 1
	result.Total = nav.Len()
	result.ImageID = nav.Current()
	result.ImageURL = nav.CurrentSource()
	result.OriginalURL = nav.OriginalURL(nav.Current())
	result.ShowSpinner = !nav.Loaded()

	for index, id := range nav.Images() {
		result.Thumbnails = append(result.Thumbnails, internalmodels.LightboxThumbnail{
			ID:        id,
			Index:     index,
			URL:       c.thumbnailURL(session.album.Tag, id, nav.Status(id)),
			IsCurrent: index == nav.Index(),
		})
	}

	return result
}

func (c LightboxController) thumbnailURL(tag, id string, status lightbox.DeliveryStatus) string {
	if !c.builder.Configured() || status == lightbox.CdnFailed {
		return services.ThumbnailURL(tag, id)
	}

	return c.builder.BuildURL(id, cdn.Options{
		Width:   thumbnailWidth,
		Height:  thumbnailWidth,
		Crop:    cdn.CropThumb,
		Gravity: cdn.GravityAuto,
		Quality: "auto",
	})
}
