package main

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/yearinreview/cmd/website/internal/api"
	"github.com/adampresley/yearinreview/cmd/website/internal/configuration"
	"github.com/adampresley/yearinreview/cmd/website/internal/home"
	"github.com/adampresley/yearinreview/cmd/website/internal/lightboxes"
	"github.com/adampresley/yearinreview/cmd/website/internal/media"
	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/lightbox"
	"github.com/adampresley/yearinreview/pkg/services"
	"github.com/adampresley/yearinreview/pkg/showcase"
)

var (
	Version string = "development"
	appName string = "yearinreview"

	//go:embed app
	appFS embed.FS

	//go:embed content
	contentFS embed.FS

	config configuration.Config

	/* Services */
	albumService     services.AlbumService
	letterService    services.LetterServicer
	listingService   services.ListingServicer
	originalStore    services.OriginalStorer
	renderer         rendering.TemplateRenderer
	sessionService   sessions.Session[string]
	sessionStore     lightbox.SessionStorer
	thumbnailService services.ThumbnailServicer
	zipService       services.ZipServicer

	/* Controllers */
	albumAPIController api.AlbumAPIHandlers
	homeController     home.HomeHandlers
	lightboxController lightboxes.LightboxHandlers
	mediaController    media.MediaHandlers
)

func main() {
	var (
		err     error
		content showcase.Showcase
		letter  []byte
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("cloudName", config.CloudName),
		slog.String("awsBucket", config.AwsBucket),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Load page content
	 */
	if content, err = showcase.Load(contentFS, "content/showcase.yaml"); err != nil {
		panic(err)
	}

	if letter, err = fs.ReadFile(contentFS, "content/letter.md"); err != nil {
		panic(err)
	}

	/*
	 * Setup services
	 */
	cookieStore := sessions.NewCookieStore(
		config.CookieSecret,
		sessions.WithHttpOnly(true),
		sessions.WithMaxAge(lightbox.DefaultSessionMaxAge),
	)
	cookieStore.Options.Path = "/"

	sessionService = sessions.NewSessionWrapper[string](cookieStore, "yearinreview", "lightboxid")
	sessionStore = lightbox.NewSessionStore(lightbox.SessionStoreConfig{
		MaxAge: lightbox.DefaultSessionMaxAge,
	})

	builder := cdn.NewBuilder(cdn.BuilderConfig{
		BaseURL:   config.CdnBaseURL,
		CloudName: config.CloudName,
	})

	if !builder.Configured() {
		slog.Warn("no cdn cloud name configured. every image is served from its original")
	}

	listingService = services.NewListingService(services.ListingServiceConfig{
		Builder: builder,
		Timeout: time.Duration(config.ListingTimeoutSeconds) * time.Second,
	})

	albumService = services.NewAlbumService(services.AlbumServiceConfig{
		Albums:         content.Albums,
		Cache:          services.NewAlbumImageCache(),
		ListingService: listingService,
		MaxWorkers:     config.MaxFetchWorkers,
		ShutdownCtx:    shutdownCtx,
	})

	originalStore = setupOriginalStore()

	thumbnailService = services.NewThumbnailService(services.ThumbnailServiceConfig{
		MaxSize:       uint(config.ThumbnailSize),
		OriginalStore: originalStore,
	})

	zipService = services.NewZipService(services.ZipServiceConfig{
		OriginalStore: originalStore,
	})

	if letterService, err = services.NewLetterService(services.LetterServiceConfig{Markdown: letter}); err != nil {
		panic(err)
	}

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	/*
	 * Setup controllers
	 */
	albumAPIController = api.NewAlbumAPIController(api.AlbumAPIControllerConfig{
		AlbumService: albumService,
	})

	homeController = home.NewHomeController(home.HomeControllerConfig{
		AlbumService:  albumService,
		Builder:       builder,
		LetterService: letterService,
		Renderer:      renderer,
		Showcase:      content,
	})

	lightboxController = lightboxes.NewLightboxController(lightboxes.LightboxControllerConfig{
		AlbumService:   albumService,
		Builder:        builder,
		DisplayWidth:   config.LightboxDisplayWidth,
		Renderer:       renderer,
		SessionService: sessionService,
		SessionStore:   sessionStore,
	})

	mediaController = media.NewMediaController(media.MediaControllerConfig{
		AlbumService:     albumService,
		OriginalStore:    originalStore,
		ThumbnailService: thumbnailService,
		ZipService:       zipService,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	lightboxMiddleware := lightboxes.NewStateMiddleware(
		sessionService,
		sessionStore,
		[]string{
			"/static",
			"/heartbeat",
			"/api",
			"/originals",
			"/thumbnails",
		},
	)

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: homeController.HomePage},
		{Path: "GET /albums", HandlerFunc: homeController.AlbumGrid},
		{Path: "POST /albums/{id}/refresh", HandlerFunc: homeController.RefreshAlbum},
		{Path: "GET /albums/{id}/download", HandlerFunc: mediaController.DownloadAlbum},
		{Path: "GET /api/albums", HandlerFunc: albumAPIController.GetAlbums},
		{Path: "POST /api/albums/{id}/refresh", HandlerFunc: albumAPIController.RefreshAlbum},
		{Path: "GET /originals/{tag}/{id...}", HandlerFunc: mediaController.Original},
		{Path: "GET /thumbnails/{tag}/{id...}", HandlerFunc: mediaController.Thumbnail},
		{Path: "GET /albums/{id}/lightbox", HandlerFunc: lightboxController.Open, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "GET /lightbox/next", HandlerFunc: lightboxController.Next, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "GET /lightbox/previous", HandlerFunc: lightboxController.Previous, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "GET /lightbox/jump/{index}", HandlerFunc: lightboxController.Jump, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "GET /lightbox/key", HandlerFunc: lightboxController.Key, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "POST /lightbox/failed", HandlerFunc: lightboxController.ImageFailed, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "POST /lightbox/loaded", HandlerFunc: lightboxController.ImageLoaded, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
		{Path: "DELETE /lightbox", HandlerFunc: lightboxController.Close, Middlewares: []mux.MiddlewareFunc{lightboxMiddleware}},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Resolve album images in the background. The grid polls until this
	 * finishes.
	 */
	setupAlbumResolver(shutdownCtx)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	albumService.Stop()
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

/*
setupOriginalStore serves originals from S3 when a bucket is configured,
otherwise from the local originals directory.
*/
func setupOriginalStore() services.OriginalStorer {
	var (
		err      error
		s3Client s3.S3Client
	)

	if config.AwsBucket == "" {
		slog.Info("serving originals from local directory", "dir", config.OriginalsDir)
		return services.NewDirOriginalStore(services.DirOriginalStoreConfig{
			FS: os.DirFS(config.OriginalsDir),
		})
	}

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	if s3Client, err = s3.NewClient(awsConfig); err != nil {
		panic(err)
	}

	slog.Info("serving originals from S3", "bucket", config.AwsBucket, "folder", config.OriginalsFolder)

	return services.NewS3OriginalStore(services.S3OriginalStoreConfig{
		Bucket:          config.AwsBucket,
		OriginalsFolder: config.OriginalsFolder,
		S3Client:        s3Client,
	})
}

func setupAlbumResolver(ctx context.Context) {
	go func() {
		albumService.Initialize(ctx)
		slog.Info("album resolver finished.")
	}()
}
