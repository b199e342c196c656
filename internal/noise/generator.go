// Package noise produces the film-grain dots drawn over the About page.
package noise

import (
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultPoints   = 60
	DefaultInterval = 200 * time.Millisecond

	// MaxOpacity bounds a single dot's opacity.
	MaxOpacity = 0.15
)

// Point is a dot position in viewport percent (0..100).
type Point struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
}

// Generator regenerates a frame of random points on a fixed interval
// between Start and Stop.
type Generator struct {
	points   int
	interval time.Duration

	mu     sync.Mutex
	rnd    *rand.Rand
	frame  []Point
	ticks  uint64
	subs   map[int]chan []Point
	nextID int

	running bool
	stop    chan struct{}
	done    chan struct{}
}

type Option func(*Generator)

// WithSeed makes the generated frames deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewSource(seed))
	}
}

func New(points int, interval time.Duration, opts ...Option) *Generator {
	if points <= 0 {
		points = DefaultPoints
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	g := &Generator{
		points:   points,
		interval: interval,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		subs:     make(map[int]chan []Point),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Start renders the first frame synchronously and launches the ticker.
// Calling Start on a running generator is a no-op.
func (g *Generator) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return
	}

	g.running = true
	g.stop = make(chan struct{})
	g.done = make(chan struct{})
	g.regenerateLocked()

	go g.loop(g.stop, g.done)
}

// Stop cancels the ticker and waits for the loop to exit. No frame is
// produced after Stop returns. Safe to call more than once.
func (g *Generator) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	stop, done := g.stop, g.done
	g.mu.Unlock()

	close(stop)
	<-done

	g.mu.Lock()
	for id, ch := range g.subs {
		close(ch)
		delete(g.subs, id)
	}
	g.mu.Unlock()
}

func (g *Generator) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.mu.Lock()
			// Stop may have won the race for the lock.
			if g.running {
				g.regenerateLocked()
			}
			g.mu.Unlock()
		}
	}
}

func (g *Generator) regenerateLocked() {
	frame := make([]Point, g.points)
	for i := range frame {
		frame[i] = Point{
			ID:      i,
			X:       g.rnd.Float64() * 100,
			Y:       g.rnd.Float64() * 100,
			Opacity: g.rnd.Float64() * MaxOpacity,
		}
	}
	g.frame = frame
	g.ticks++

	for _, ch := range g.subs {
		select {
		case ch <- frame:
		default:
			// Slow subscriber, drop the frame.
		}
	}
}

// Frame returns a copy of the current frame; empty before the first Start.
func (g *Generator) Frame() []Point {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Point, len(g.frame))
	copy(out, g.frame)
	return out
}

// Ticks counts generated frames, including the one produced by Start.
func (g *Generator) Ticks() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ticks
}

func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Subscribe delivers every new frame until the returned cancel func is
// called or the generator stops, at which point the channel is closed.
// Frames are shared and must not be modified by the receiver.
func (g *Generator) Subscribe() (<-chan []Point, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan []Point, 1)
	if !g.running {
		close(ch)
		return ch, func() {}
	}

	id := g.nextID
	g.nextID++
	g.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if sub, ok := g.subs[id]; ok {
				close(sub)
				delete(g.subs, id)
			}
		})
	}

	return ch, cancel
}
