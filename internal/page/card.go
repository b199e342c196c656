package page

import (
	"sync"

	"shortmovie-about/internal/domain/models"
)

// ImageStatus is the per-card image lifecycle: Loading, then exactly one
// of Loaded or Errored for the rest of the mount.
type ImageStatus int

const (
	ImageLoading ImageStatus = iota
	ImageLoaded
	ImageErrored
)

func (s ImageStatus) String() string {
	switch s {
	case ImageLoading:
		return "loading"
	case ImageLoaded:
		return "loaded"
	case ImageErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Navigator opens an external URL in a new browsing context.
type Navigator interface {
	Open(url string)
}

type NavigatorFunc func(url string)

func (f NavigatorFunc) Open(url string) { f(url) }

// Card is one member of the carousel plus its transient UI state. Cards
// never share state with each other.
type Card struct {
	Member models.Member

	mu      sync.Mutex
	status  ImageStatus
	hovered bool
	tooltip bool
}

func NewCard(member models.Member) *Card {
	return &Card{Member: member, status: ImageLoading}
}

func (c *Card) Status() ImageStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// MarkLoaded reports whether the transition happened.
func (c *Card) MarkLoaded() bool {
	return c.transition(ImageLoaded)
}

// MarkErrored reports whether the transition happened.
func (c *Card) MarkErrored() bool {
	return c.transition(ImageErrored)
}

func (c *Card) transition(to ImageStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != ImageLoading {
		return false
	}
	c.status = to
	return true
}

func (c *Card) ShowSpinner() bool {
	return c.Status() == ImageLoading
}

// ShowFallback is true until the image has actually loaded.
func (c *Card) ShowFallback() bool {
	return c.Status() != ImageLoaded
}

func (c *Card) SetHovered(hovered bool) {
	c.mu.Lock()
	c.hovered = hovered
	c.mu.Unlock()
}

func (c *Card) Hovered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

func (c *Card) SetTooltip(visible bool) {
	c.mu.Lock()
	c.tooltip = visible
	c.mu.Unlock()
}

func (c *Card) TooltipVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}

// OpenProfile hands the stored Instagram link to nav exactly as stored.
// A bad link is the navigator's problem and is not reported.
func (c *Card) OpenProfile(nav Navigator) {
	nav.Open(c.Member.LinkToInstagram)
}
