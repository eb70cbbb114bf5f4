package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"sync"

	"github.com/nfnt/resize"
)

type ThumbnailServicer interface {
	Thumbnail(ctx context.Context, tag, id string) ([]byte, error)
}

type ThumbnailServiceConfig struct {
	MaxSize       uint
	OriginalStore OriginalStorer
}

/*
ThumbnailService scales originals down for the lightbox strip when no CDN
is available to do it. Results are kept in memory for the process lifetime.
*/
type ThumbnailService struct {
	cache         map[string][]byte
	maxSize       uint
	mu            *sync.RWMutex
	originalStore OriginalStorer
}

func NewThumbnailService(config ThumbnailServiceConfig) ThumbnailService {
	if config.MaxSize == 0 {
		config.MaxSize = 160
	}

	return ThumbnailService{
		cache:         map[string][]byte{},
		maxSize:       config.MaxSize,
		mu:            &sync.RWMutex{},
		originalStore: config.OriginalStore,
	}
}

func (s ThumbnailService) Thumbnail(ctx context.Context, tag, id string) ([]byte, error) {
	var (
		err      error
		img      image.Image
		original Original
		buf      bytes.Buffer
	)

	key := tag + "/" + id

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()

	if ok {
		return cached, nil
	}

	if original, err = s.originalStore.Open(ctx, tag, id); err != nil {
		return nil, fmt.Errorf("error opening original for thumbnail: %w", err)
	}

	defer original.Body.Close()

	if img, err = s.resizeReader(original.Body, s.maxSize); err != nil {
		return nil, fmt.Errorf("error resizing image %s: %w", key, err)
	}

	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("error encoding image for thumbnail: %w", err)
	}

	result := buf.Bytes()

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()

	slog.Debug("created thumbnail", "key", key, "bytes", len(result))
	return result, nil
}

func (s ThumbnailService) resizeReader(r io.Reader, maxSize uint) (image.Image, error) {
	var (
		err error
		img image.Image
	)

	if img, _, err = image.Decode(r); err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	return Resize(img, maxSize), nil
}

/*
Resize scales img so its longest edge is maxSize, keeping the aspect ratio.
Images that already fit are returned unchanged.
*/
func Resize(img image.Image, maxSize uint) image.Image {
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width <= maxSize && height <= maxSize {
		return img
	}

	var newWidth, newHeight uint
	if width > height {
		// Landscape orientation
		newWidth = maxSize
		newHeight = uint(float64(height) * (float64(maxSize) / float64(width)))
	} else {
		// Portrait orientation or square
		newHeight = maxSize
		newWidth = uint(float64(width) * (float64(maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
