// Package page implements the About page lifecycle: mount, roster load,
// per-card image resolution, render model, teardown.
package page

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"shortmovie-about/internal/domain/models"
	"shortmovie-about/internal/gallery"
	"shortmovie-about/internal/lib/logger/sl"
	"shortmovie-about/internal/noise"
)

const maxConcurrentProbes = 8

type RosterLoader interface {
	Load(ctx context.Context) []models.Member
}

type Page struct {
	log    *slog.Logger
	loader RosterLoader
	images ImageServer
	noise  *noise.Generator

	mu       sync.Mutex
	mounted  bool
	torn     bool
	mountCtx context.Context
	cancel   context.CancelFunc
	cards    []*Card

	loaded chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

func New(log *slog.Logger, loader RosterLoader, images ImageServer, gen *noise.Generator) *Page {
	return &Page{
		log:    log,
		loader: loader,
		images: images,
		noise:  gen,
		loaded: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Mount starts the roster fetch and the noise ticker. Only the first call
// has an effect, and mounting a torn-down page does nothing.
func (p *Page) Mount(ctx context.Context) {
	const op = "page.Mount"

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mounted || p.torn {
		return
	}
	p.mounted = true
	p.mountCtx, p.cancel = context.WithCancel(ctx)

	p.log.With(slog.String("op", op)).Debug("mounting about page")

	p.noise.Start()

	p.wg.Add(1)
	go p.fetch(p.mountCtx)
}

func (p *Page) fetch(ctx context.Context) {
	const op = "page.fetch"
	defer p.wg.Done()

	members := p.loader.Load(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.torn {
		p.log.With(slog.String("op", op)).Debug("page torn down before roster arrived, discarding",
			slog.Int("member_count", len(members)))
		return
	}

	cards := make([]*Card, 0, len(members))
	for _, m := range members {
		cards = append(cards, NewCard(m))
	}
	p.cards = cards
	close(p.loaded)
}

// Wait blocks until the roster is stored, the page is torn down, or ctx
// is done. It reports whether the roster is available.
func (p *Page) Wait(ctx context.Context) bool {
	select {
	case <-p.loaded:
		return true
	case <-p.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (p *Page) Loaded() bool {
	select {
	case <-p.loaded:
		return true
	default:
		return false
	}
}

// Cards returns the live cards in roster order; nil before the roster
// arrives.
func (p *Page) Cards() []*Card {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// ResolveImages probes every card image concurrently and moves each card
// to Loaded or Errored. Failures stay local to their card.
func (p *Page) ResolveImages(ctx context.Context) {
	const op = "page.ResolveImages"

	p.mu.Lock()
	if !p.mounted || p.torn {
		p.mu.Unlock()
		return
	}
	cards := make([]*Card, len(p.cards))
	copy(cards, p.cards)
	mountCtx := p.mountCtx
	p.wg.Add(1)
	p.mu.Unlock()
	defer p.wg.Done()

	log := p.log.With(slog.String("op", op))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(mountCtx, cancel)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)

	for _, card := range cards {
		g.Go(func() error {
			err := p.images.Probe(gctx, card.Member.ImagePath)
			if p.isTornDown() {
				return nil
			}
			if err != nil {
				log.Debug("member image failed to load",
					slog.Uint64("member_id", uint64(card.Member.ID)),
					slog.String("image_path", card.Member.ImagePath),
					sl.Err(err))
				card.MarkErrored()
				return nil
			}
			card.MarkLoaded()
			return nil
		})
	}

	_ = g.Wait()
}

func (p *Page) isTornDown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.torn
}

// Teardown cancels the in-flight fetch, stops the noise ticker and waits
// for background work. Roster state is frozen afterwards. Idempotent.
func (p *Page) Teardown() {
	const op = "page.Teardown"

	p.mu.Lock()
	if p.torn {
		p.mu.Unlock()
		return
	}
	p.torn = true
	close(p.done)
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.noise.Stop()
	p.wg.Wait()

	p.log.With(slog.String("op", op)).Debug("about page torn down")
}

// CardView is the render snapshot of a Card.
type CardView struct {
	Member         models.Member
	ImageURL       string
	Status         ImageStatus
	ShowImage      bool
	ShowSpinner    bool
	ShowFallback   bool
	Hovered        bool
	TooltipVisible bool
}

// View is everything the about template needs.
type View struct {
	Cards         []CardView
	Loaded        bool
	Documentation []models.DocumentationItem
	Timeline      []models.ProcessPhase
	Noise         []noise.Point
}

func (p *Page) View() View {
	cards := p.Cards()

	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		status := c.Status()
		views = append(views, CardView{
			Member:         c.Member,
			ImageURL:       p.images.URL(c.Member.ImagePath),
			Status:         status,
			ShowImage:      status != ImageErrored,
			ShowSpinner:    status == ImageLoading,
			ShowFallback:   status != ImageLoaded,
			Hovered:        c.Hovered(),
			TooltipVisible: c.TooltipVisible(),
		})
	}

	return View{
		Cards:         views,
		Loaded:        p.Loaded(),
		Documentation: gallery.Documentation(),
		Timeline:      gallery.Timeline(),
		Noise:         p.noise.Frame(),
	}
}
