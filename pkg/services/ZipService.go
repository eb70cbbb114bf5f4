package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/adampresley/yearinreview/pkg/models"
)

type ZipServicer interface {
	Filename(album models.ResolvedAlbum) string
	WriteAlbum(ctx context.Context, album models.ResolvedAlbum, w io.Writer) (int, error)
}

type ZipServiceConfig struct {
	OriginalStore OriginalStorer
}

/*
ZipService streams an album's originals into a zip archive. Images whose
original cannot be found are skipped.
*/
type ZipService struct {
	originalStore OriginalStorer
}

func NewZipService(config ZipServiceConfig) ZipService {
	return ZipService{
		originalStore: config.OriginalStore,
	}
}

func (s ZipService) Filename(album models.ResolvedAlbum) string {
	name := album.Title
	if name == "" {
		name = album.ID
	}

	return fmt.Sprintf("%s.zip", strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

/*
WriteAlbum writes one zip entry per resolved image and returns how many
were added.
*/
func (s ZipService) WriteAlbum(ctx context.Context, album models.ResolvedAlbum, w io.Writer) (int, error) {
	var (
		err   error
		added int
	)

	l := slog.With("albumID", album.ID, "tag", album.Tag)
	zipWriter := zip.NewWriter(w)

	addFile := func(id string) error {
		original, err := s.originalStore.Open(ctx, album.Tag, id)
		if err != nil {
			return fmt.Errorf("failed to open original '%s': %w", id, err)
		}

		defer original.Body.Close()

		dest, err := zipWriter.Create(original.Name)
		if err != nil {
			return fmt.Errorf("failed to create file '%s' in zip: %w", original.Name, err)
		}

		if _, err = io.Copy(dest, original.Body); err != nil {
			return fmt.Errorf("failed to copy file '%s' to zip: %w", original.Name, err)
		}

		return nil
	}

	for _, id := range album.Images {
		if err = ctx.Err(); err != nil {
			return added, fmt.Errorf("error writing album zip: %w", err)
		}

		if err = addFile(id); err != nil {
			l.Warn("skipping image in zip", "imageID", id, "error", err)
			continue
		}

		added++
	}

	if err = zipWriter.Close(); err != nil {
		return added, fmt.Errorf("failed to close zip writer: %w", err)
	}

	l.Info("album zip written", "numImages", added)
	return added, nil
}
