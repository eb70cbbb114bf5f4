package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/alitto/pond/v2"
)

type AlbumServicer interface {
	GetAlbum(id string) (models.ResolvedAlbum, error)
	GetAlbums() []models.ResolvedAlbum
	InitialLoadComplete() bool
	Initialize(ctx context.Context)
	Refresh(ctx context.Context, id string) (models.ResolvedAlbum, error)
	RefreshAsync(ctx context.Context, id string) error
}

type AlbumServiceConfig struct {
	Albums         []models.AlbumDefinition
	Cache          *AlbumImageCache
	ListingService ListingServicer
	MaxWorkers     int
	ShutdownCtx    context.Context
}

type albumEntry struct {
	images []string
	state  models.AlbumState
}

/*
AlbumService resolves the image list of every configured album. Listings are
fetched in parallel on a worker pool and cached by tag; anything other than a
non-empty listing resolves to the album's fallback images.
*/
type AlbumService struct {
	albums              []models.AlbumDefinition
	cache               *AlbumImageCache
	entries             map[string]*albumEntry
	initialLoadComplete *atomic.Bool
	listingService      ListingServicer
	mu                  *sync.RWMutex
	pool                pond.Pool
}

func NewAlbumService(config AlbumServiceConfig) AlbumService {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 4
	}

	if config.ShutdownCtx == nil {
		config.ShutdownCtx = context.Background()
	}

	if config.Cache == nil {
		config.Cache = NewAlbumImageCache()
	}

	entries := make(map[string]*albumEntry, len(config.Albums))

	for _, album := range config.Albums {
		entries[album.ID] = &albumEntry{
			images: clone(album.FallbackImages),
			state:  models.AlbumUninitialized,
		}
	}

	return AlbumService{
		albums:              config.Albums,
		cache:               config.Cache,
		entries:             entries,
		initialLoadComplete: &atomic.Bool{},
		listingService:      config.ListingService,
		mu:                  &sync.RWMutex{},
		pool:                pond.NewPool(config.MaxWorkers, pond.WithContext(config.ShutdownCtx)),
	}
}

/*
Initialize resolves every album and returns once all of them have either
a listing or their fallback images.
*/
func (s AlbumService) Initialize(ctx context.Context) {
	slog.Info("resolving album images...", "numAlbums", len(s.albums))

	group := s.pool.NewGroup()

	for _, album := range s.albums {
		group.Submit(func() {
			s.resolve(ctx, album, false)
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("error waiting for album resolution", "error", err)
	}

	s.initialLoadComplete.Store(true)
	slog.Info("album images resolved", "cachedTags", s.cache.Len())
}

func (s AlbumService) InitialLoadComplete() bool {
	return s.initialLoadComplete.Load()
}

func (s AlbumService) GetAlbums() []models.ResolvedAlbum {
	return slices.Map(s.albums, func(album models.AlbumDefinition, index int) models.ResolvedAlbum {
		return s.snapshot(album)
	})
}

func (s AlbumService) GetAlbum(id string) (models.ResolvedAlbum, error) {
	album, ok := s.findAlbum(id)
	if !ok {
		return models.ResolvedAlbum{}, fmt.Errorf("error getting album '%s': %w", id, models.ErrAlbumNotFound)
	}

	return s.snapshot(album), nil
}

/*
Refresh evicts the album's cache entry and fetches its listing again,
waiting for the result. Other albums are untouched.
*/
func (s AlbumService) Refresh(ctx context.Context, id string) (models.ResolvedAlbum, error) {
	album, ok := s.findAlbum(id)
	if !ok {
		return models.ResolvedAlbum{}, fmt.Errorf("error refreshing album '%s': %w", id, models.ErrAlbumNotFound)
	}

	task := s.pool.Submit(func() {
		s.resolve(ctx, album, true)
	})

	if err := task.Wait(); err != nil {
		return s.snapshot(album), fmt.Errorf("error refreshing album '%s': %w", id, err)
	}

	return s.snapshot(album), nil
}

/*
RefreshAsync is Refresh without waiting. The album reports IsLoading until
the fetch lands.
*/
func (s AlbumService) RefreshAsync(ctx context.Context, id string) error {
	album, ok := s.findAlbum(id)
	if !ok {
		return fmt.Errorf("error refreshing album '%s': %w", id, models.ErrAlbumNotFound)
	}

	s.setLoading(album.ID)

	s.pool.Submit(func() {
		s.resolve(ctx, album, true)
	})

	return nil
}

/*
ResolveImages is the fallback policy. A successful non-empty listing is
sorted by identifier and may be cached; every other outcome yields a copy of
the fallback list in its declared order.
*/
func ResolveImages(result ListResult, fallback []string) ([]string, bool) {
	if result.Outcome == ListSuccess && len(result.IDs) > 0 {
		ids := clone(result.IDs)
		sort.Strings(ids)
		return ids, true
	}

	return clone(fallback), false
}

func (s AlbumService) resolve(ctx context.Context, album models.AlbumDefinition, evict bool) {
	if evict {
		s.cache.Delete(album.Tag)
	} else if ids, ok := s.cache.Get(album.Tag); ok {
		s.setResolved(album.ID, ids)
		return
	}

	s.setLoading(album.ID)

	result := s.listingService.ListByTag(ctx, album.Tag)
	images, cacheable := ResolveImages(result, album.FallbackImages)

	if result.Outcome == ListFailure {
		slog.Warn("could not fetch images for tag. using fallback images", "albumID", album.ID, "tag", album.Tag, "error", result.Err)
	}

	if cacheable {
		s.cache.Set(album.Tag, images)
	}

	slog.Debug("album resolved", "albumID", album.ID, "tag", album.Tag, "outcome", result.Outcome.String(), "numImages", len(images))
	s.setResolved(album.ID, images)
}

func (s AlbumService) setLoading(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[id]; ok {
		entry.state = models.AlbumLoading
	}
}

func (s AlbumService) setResolved(id string, images []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[id]; ok {
		entry.images = images
		entry.state = models.AlbumResolved
	}
}

func (s AlbumService) snapshot(album models.AlbumDefinition) models.ResolvedAlbum {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := models.ResolvedAlbum{
		AlbumDefinition: album,
		Images:          clone(album.FallbackImages),
		State:           models.AlbumUninitialized,
	}

	if entry, ok := s.entries[album.ID]; ok {
		result.Images = clone(entry.images)
		result.State = entry.state
		result.IsLoading = entry.state == models.AlbumLoading
	}

	return result
}

func (s AlbumService) findAlbum(id string) (models.AlbumDefinition, bool) {
	for _, album := range s.albums {
		if album.ID == id {
			return album, true
		}
	}

	return models.AlbumDefinition{}, false
}

/*
Stop waits for in-flight fetches and shuts the worker pool down.
*/
func (s AlbumService) Stop() {
	_ = s.pool.Stop().Wait()
}
