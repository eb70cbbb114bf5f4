package cdn

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"strings"
)

type CropMode string

const (
	CropFill  CropMode = "fill"
	CropFit   CropMode = "fit"
	CropScale CropMode = "scale"
	CropThumb CropMode = "thumb"
	CropLimit CropMode = "limit"
)

type Gravity string

const (
	GravityAuto   Gravity = "auto"
	GravityFace   Gravity = "face"
	GravityCenter Gravity = "center"
)

const (
	DefaultBaseURL      = "https://res.cloudinary.com"
	DefaultPreloadWidth = 1200
	DefaultImageWidth   = 800
	PlaceholderWidth    = 20
)

var (
	DefaultWidths = []int{400, 800, 1200, 1600}

	// Gravity is only a valid directive alongside these crop modes.
	gravityCrops = map[CropMode]bool{
		CropFill:  true,
		CropThumb: true,
		"crop":    true,
	}

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

/*
Options are the transformation directives applied to a delivered image.
Zero values are omitted from the URL, except Quality and Format which
fall back to "auto".
*/
type Options struct {
	Width   int
	Height  int
	Crop    CropMode
	Gravity Gravity
	Quality string
	Format  string
}

type BuilderConfig struct {
	BaseURL   string
	CloudName string
}

type Builder struct {
	baseURL   string
	cloudName string
}

func NewBuilder(config BuilderConfig) Builder {
	baseURL := strings.TrimRight(config.BaseURL, "/")

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return Builder{
		baseURL:   baseURL,
		cloudName: strings.TrimSpace(config.CloudName),
	}
}

func (b Builder) Configured() bool {
	return b.cloudName != ""
}

/*
BuildURL returns the delivery URL for ref with the given transformations.
When no cloud is configured ref is returned untouched.
*/
func (b Builder) BuildURL(ref string, options Options) string {
	if !b.Configured() {
		return ref
	}

	return fmt.Sprintf(
		"%s/%s/image/upload/%s/%s",
		b.baseURL,
		b.cloudName,
		Directives(options),
		Identifier(ref),
	)
}

/*
SrcSet builds a responsive source list for ref. A nil or empty widths
slice uses DefaultWidths. Returns an empty string when no cloud is
configured, since the original has no width variants.
*/
func (b Builder) SrcSet(ref string, widths []int, options Options) string {
	if !b.Configured() {
		return ""
	}

	if len(widths) == 0 {
		widths = DefaultWidths
	}

	entries := make([]string, 0, len(widths))

	for _, width := range widths {
		o := options
		o.Width = width
		entries = append(entries, fmt.Sprintf("%s %dw", b.BuildURL(ref, o), width))
	}

	return strings.Join(entries, ", ")
}

func (b Builder) PreloadURL(ref string, width int) string {
	if width <= 0 {
		width = DefaultPreloadWidth
	}

	return b.BuildURL(ref, Options{Width: width, Quality: "auto"})
}

func (b Builder) PlaceholderURL(ref string, options Options) string {
	options.Width = PlaceholderWidth
	options.Height = 0
	options.Quality = "auto:low"

	return b.BuildURL(ref, options)
}

func (b Builder) OptimizedURL(ref string, options Options) string {
	if options.Width <= 0 {
		options.Width = DefaultImageWidth
	}

	if options.Crop == "" {
		options.Crop = CropFill
	}

	if options.Quality == "" {
		options.Quality = "auto"
	}

	options.Gravity = GravityAuto
	return b.BuildURL(ref, options)
}

/*
ListURL is the tag listing resource for the configured cloud.
*/
func (b Builder) ListURL(tag string) string {
	return fmt.Sprintf("%s/%s/image/list/%s.json", b.baseURL, b.cloudName, url.PathEscape(tag))
}

/*
ResponsiveWidths derives candidate widths from a base width. Zero or
negative base widths yield DefaultWidths.
*/
func ResponsiveWidths(base int) []int {
	if base <= 0 {
		result := make([]int, len(DefaultWidths))
		copy(result, DefaultWidths)
		return result
	}

	return []int{
		int(math.Round(float64(base) * 0.5)),
		base,
		int(math.Round(float64(base) * 1.5)),
		base * 2,
	}
}

/*
Identifier normalizes an image reference. Legacy paths such as
"/pics/Italy/IMG_8904.JPG" become "IMG_8904". References without an image
extension, including nested "folder/name" identifiers, are kept verbatim.
*/
func Identifier(ref string) string {
	ext := strings.ToLower(path.Ext(ref))

	for _, imageExt := range imageExtensions {
		if ext == imageExt {
			base := path.Base(ref)
			return strings.TrimSuffix(base, path.Ext(base))
		}
	}

	return ref
}

func Directives(options Options) string {
	transforms := []string{}

	if options.Width > 0 {
		transforms = append(transforms, fmt.Sprintf("w_%d", options.Width))
	}

	if options.Height > 0 {
		transforms = append(transforms, fmt.Sprintf("h_%d", options.Height))
	}

	if options.Crop != "" {
		transforms = append(transforms, "c_"+string(options.Crop))
	}

	if options.Gravity != "" && gravityCrops[options.Crop] {
		transforms = append(transforms, "g_"+string(options.Gravity))
	}

	quality := options.Quality
	if quality == "" {
		quality = "auto"
	}

	format := options.Format
	if format == "" {
		format = "auto"
	}

	transforms = append(transforms, "q_"+quality, "f_"+format)
	return strings.Join(transforms, ",")
}
