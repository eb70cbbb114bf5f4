package services

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/getoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	ErrOriginalNotFound = fmt.Errorf("original image not found")

	validExt = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

/*
Original is an un-transformed image as stored. Callers must close Body.
*/
type Original struct {
	Body        io.ReadCloser
	ContentType string
	Name        string
	Size        int64
}

type OriginalStorer interface {
	Open(ctx context.Context, tag, id string) (Original, error)
}

/*
OriginalURL is the path this site serves the original of id under.
*/
func OriginalURL(tag, id string) string {
	return fmt.Sprintf("/originals/%s/%s", url.PathEscape(tag), url.PathEscape(id))
}

func ThumbnailURL(tag, id string) string {
	return fmt.Sprintf("/thumbnails/%s/%s", url.PathEscape(tag), url.PathEscape(id))
}

/*
matchesID reports whether a stored file name is an image named id, whatever
its extension or case.
*/
func matchesID(name, id string) bool {
	ext := filepath.Ext(name)

	if !slices.IsInSlice(strings.ToLower(ext), validExt) {
		return false
	}

	return strings.TrimSuffix(name, ext) == id
}

func contentTypeFor(name string) string {
	if result := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); result != "" {
		return result
	}

	return "application/octet-stream"
}

type DirOriginalStoreConfig struct {
	FS fs.FS
}

/*
DirOriginalStore reads originals from a directory laid out as <tag>/<file>.
*/
type DirOriginalStore struct {
	fsys fs.FS
}

func NewDirOriginalStore(config DirOriginalStoreConfig) DirOriginalStore {
	return DirOriginalStore{
		fsys: config.FS,
	}
}

func (s DirOriginalStore) Open(ctx context.Context, tag, id string) (Original, error) {
	var (
		err     error
		entries []fs.DirEntry
		f       fs.File
		info    fs.FileInfo
	)

	dir := path.Join(tag, path.Dir(id))
	base := path.Base(id)

	if entries, err = fs.ReadDir(s.fsys, dir); err != nil {
		return Original{}, fmt.Errorf("error reading originals directory '%s': %w", dir, ErrOriginalNotFound)
	}

	for _, entry := range entries {
		if entry.IsDir() || !matchesID(entry.Name(), base) {
			continue
		}

		name := path.Join(dir, entry.Name())

		if f, err = s.fsys.Open(name); err != nil {
			return Original{}, fmt.Errorf("error opening original '%s': %w", name, err)
		}

		if info, err = f.Stat(); err != nil {
			_ = f.Close()
			return Original{}, fmt.Errorf("error reading original '%s': %w", name, err)
		}

		return Original{
			Body:        f,
			ContentType: contentTypeFor(entry.Name()),
			Name:        entry.Name(),
			Size:        info.Size(),
		}, nil
	}

	return Original{}, fmt.Errorf("error finding original '%s/%s': %w", tag, id, ErrOriginalNotFound)
}

type S3OriginalStoreConfig struct {
	Bucket          string
	OriginalsFolder string
	S3Client        s3.S3Client
}

/*
S3OriginalStore reads originals from <folder>/<tag>/<file> in a bucket.
*/
type S3OriginalStore struct {
	bucket          string
	originalsFolder string
	s3Client        s3.S3Client
}

func NewS3OriginalStore(config S3OriginalStoreConfig) S3OriginalStore {
	return S3OriginalStore{
		bucket:          config.Bucket,
		originalsFolder: config.OriginalsFolder,
		s3Client:        config.S3Client,
	}
}

func (s S3OriginalStore) Open(ctx context.Context, tag, id string) (Original, error) {
	var (
		err      error
		response s3.ListResponse
		object   s3.GetObjectResponse
	)

	prefix := path.Join(s.originalsFolder, tag, id)

	response, err = s.s3Client.List(
		s.bucket,
		prefix,
		listoptions.WithContext(ctx),
		listoptions.WithFilter(func(obj types.Object) bool {
			return matchesID(path.Base(aws.ToString(obj.Key)), path.Base(id))
		}),
	)

	if err != nil {
		return Original{}, fmt.Errorf("error listing originals for '%s': %w", prefix, err)
	}

	if len(response.Objects) == 0 {
		return Original{}, fmt.Errorf("error finding original '%s': %w", prefix, ErrOriginalNotFound)
	}

	key := response.Objects[0].Key

	object, err = s.s3Client.Get(
		s.bucket,
		key,
		getoptions.WithContext(ctx),
	)

	if err != nil {
		return Original{}, fmt.Errorf("error retrieving original %s: %w", key, err)
	}

	contentType := object.ContentType
	if contentType == "" {
		contentType = contentTypeFor(key)
	}

	return Original{
		Body:        object.Body,
		ContentType: contentType,
		Name:        path.Base(key),
		Size:        int64(object.Size),
	}, nil
}
