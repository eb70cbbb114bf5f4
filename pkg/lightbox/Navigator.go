package lightbox

import (
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/models"
)

const (
	DefaultDisplayWidth = 1600

	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

type DeliveryStatus int

const (
	NotAttempted DeliveryStatus = iota
	CdnOk
	CdnFailed
)

type Preloader interface {
	Preload(url string)
}

type ScrollLocker interface {
	Lock()
	Unlock()
}

type NavigatorConfig struct {
	Builder      cdn.Builder
	DisplayWidth int
	OriginalURL  func(id string) string
	Preloader    Preloader
	ScrollLocker ScrollLocker
}

/*
Navigator is one visitor's lightbox session. It is not safe for concurrent
use; each request builds its own from the stored LightboxState.
*/
type Navigator struct {
	builder      cdn.Builder
	displayWidth int
	originalURL  func(id string) string
	preloader    Preloader
	scrollLocker ScrollLocker

	images    []string
	index     int
	isOpen    bool
	loaded    bool
	preloaded map[string]bool
	status    map[string]DeliveryStatus
}

func NewNavigator(config NavigatorConfig) *Navigator {
	if config.DisplayWidth <= 0 {
		config.DisplayWidth = DefaultDisplayWidth
	}

	if config.OriginalURL == nil {
		config.OriginalURL = func(id string) string { return id }
	}

	return &Navigator{
		builder:      config.Builder,
		displayWidth: config.DisplayWidth,
		originalURL:  config.OriginalURL,
		preloader:    config.Preloader,
		scrollLocker: config.ScrollLocker,
		preloaded:    map[string]bool{},
		status:       map[string]DeliveryStatus{},
	}
}

/*
Open starts a session over images at startIndex. An empty image list leaves
the navigator closed.
*/
func (n *Navigator) Open(images []string, startIndex int) {
	n.reset()

	if len(images) == 0 {
		return
	}

	n.images = make([]string, len(images))
	copy(n.images, images)

	n.isOpen = true

	if n.scrollLocker != nil {
		n.scrollLocker.Lock()
	}

	n.moveTo(startIndex)
}

/*
Restore rebuilds an open session from stored state without preloading or
touching the scroll lock.
*/
func (n *Navigator) Restore(state models.LightboxState) {
	n.reset()

	if len(state.Images) == 0 {
		return
	}

	n.images = make([]string, len(state.Images))
	copy(n.images, state.Images)

	n.isOpen = true
	n.index = wrap(state.Index, len(n.images))
	n.loaded = state.Loaded

	for _, id := range state.Delivered {
		n.status[id] = CdnOk
	}

	for _, id := range state.Failed {
		n.status[id] = CdnFailed
	}

	for _, id := range state.Preloaded {
		n.preloaded[id] = true
	}
}

func (n *Navigator) State() models.LightboxState {
	result := models.LightboxState{
		Images:    make([]string, len(n.images)),
		Index:     n.index,
		Loaded:    n.loaded,
		Failed:    []string{},
		Delivered: []string{},
		Preloaded: []string{},
	}

	copy(result.Images, n.images)

	for _, id := range n.images {
		if n.status[id] == CdnFailed && !slices.IsInSlice(id, result.Failed) {
			result.Failed = append(result.Failed, id)
		}

		if n.status[id] == CdnOk && !slices.IsInSlice(id, result.Delivered) {
			result.Delivered = append(result.Delivered, id)
		}

		if n.preloaded[id] && !slices.IsInSlice(id, result.Preloaded) {
			result.Preloaded = append(result.Preloaded, id)
		}
	}

	return result
}

/*
Close ends the session. The scroll lock is always released, even when the
navigator was never opened.
*/
func (n *Navigator) Close() {
	n.reset()

	if n.scrollLocker != nil {
		n.scrollLocker.Unlock()
	}
}

func (n *Navigator) Next() {
	if !n.isOpen {
		return
	}

	n.moveTo(n.index + 1)
}

func (n *Navigator) Previous() {
	if !n.isOpen {
		return
	}

	n.moveTo(n.index - 1)
}

func (n *Navigator) JumpTo(index int) {
	if !n.isOpen {
		return
	}

	n.moveTo(index)
}

/*
HandleKey applies the keyboard contract. It reports whether the key was
handled; keys are ignored while closed.
*/
func (n *Navigator) HandleKey(key string) bool {
	if !n.isOpen {
		return false
	}

	switch key {
	case KeyEscape:
		n.Close()

	case KeyArrowLeft:
		n.Previous()

	case KeyArrowRight:
		n.Next()

	default:
		return false
	}

	return true
}

func (n *Navigator) IsOpen() bool {
	return n.isOpen
}

func (n *Navigator) Index() int {
	return n.index
}

func (n *Navigator) Len() int {
	return len(n.images)
}

func (n *Navigator) Images() []string {
	result := make([]string, len(n.images))
	copy(result, n.images)
	return result
}

func (n *Navigator) Current() string {
	if !n.isOpen {
		return ""
	}

	return n.images[n.index]
}

func (n *Navigator) Loaded() bool {
	return n.loaded
}

func (n *Navigator) MarkLoaded() {
	if n.isOpen {
		n.loaded = true
	}
}

func (n *Navigator) Status(id string) DeliveryStatus {
	return n.status[id]
}

/*
MarkDelivered records a successful CDN load. A failure already recorded for
the session is never overwritten.
*/
func (n *Navigator) MarkDelivered(id string) {
	if n.status[id] == CdnFailed {
		return
	}

	n.status[id] = CdnOk
}

/*
MarkFailed switches id to its original for the rest of the session. The
current image shows as loading again since its source changes.
*/
func (n *Navigator) MarkFailed(id string) {
	n.status[id] = CdnFailed

	if n.isOpen && id == n.Current() {
		n.loaded = false
	}
}

/*
SourceFor returns the URL to display id with. Images whose CDN delivery
failed, and every image when the CDN is not configured, use the original.
*/
func (n *Navigator) SourceFor(id string) string {
	if !n.UsesCdn(id) {
		return n.originalURL(id)
	}

	return n.builder.BuildURL(id, cdn.Options{Width: n.displayWidth, Crop: cdn.CropLimit, Quality: "auto"})
}

/*
UsesCdn reports whether id is currently delivered through the CDN.
*/
func (n *Navigator) UsesCdn(id string) bool {
	return n.builder.Configured() && n.status[id] != CdnFailed
}

/*
ImageLoaded records that the visitor's browser finished loading id. The
loaded flag only follows the current image, and only CDN deliveries are
recorded as CdnOk.
*/
func (n *Navigator) ImageLoaded(id string) {
	if !n.isOpen || !slices.IsInSlice(id, n.images) {
		return
	}

	if id == n.Current() {
		n.MarkLoaded()
	}

	if n.UsesCdn(id) {
		n.MarkDelivered(id)
	}
}

func (n *Navigator) OriginalURL(id string) string {
	return n.originalURL(id)
}

func (n *Navigator) CurrentSource() string {
	if !n.isOpen {
		return ""
	}

	return n.SourceFor(n.Current())
}

func (n *Navigator) moveTo(index int) {
	n.index = wrap(index, len(n.images))
	n.loaded = false
	n.preload()
}

/*
preload warms the previous, next and next-but-one images. Indices outside
the list are skipped rather than wrapped.
*/
func (n *Navigator) preload() {
	for _, offset := range []int{-1, 1, 2} {
		i := n.index + offset

		if i < 0 || i >= len(n.images) {
			continue
		}

		id := n.images[i]

		if n.preloaded[id] {
			continue
		}

		n.preloaded[id] = true

		if n.preloader != nil {
			n.preloader.Preload(n.SourceFor(id))
		}
	}
}

func (n *Navigator) reset() {
	n.images = nil
	n.index = 0
	n.isOpen = false
	n.loaded = false
	n.preloaded = map[string]bool{}
	n.status = map[string]DeliveryStatus{}
}

func wrap(index, length int) int {
	if length == 0 {
		return 0
	}

	return ((index % length) + length) % length
}

/*
URLCollector is a Preloader that remembers the URLs it was asked to warm.
*/
type URLCollector struct {
	URLs []string
}

func (c *URLCollector) Preload(url string) {
	c.URLs = append(c.URLs, url)
}
