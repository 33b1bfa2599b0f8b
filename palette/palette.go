package palette

import (
	"sync"

	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/style"
)

// Usage is the number of times a color was handed out.
type Usage struct {
	Color style.Color
	Count int
}

// Assigner hands out process colors. It is safe for concurrent use.
//
// Create instances with [New].
type Assigner struct {
	counts  map[style.Color]int
	order   []style.Color
	mode    style.Mode
	neutral bool
	mu      sync.Mutex
}

// Option configures an [Assigner].
type Option func(*Assigner)

// WithNeutralColors includes [style.White] and [style.Black] in the rotation.
func WithNeutralColors(include bool) Option {
	return func(a *Assigner) {
		a.neutral = include
	}
}

// New creates an [Assigner] for mode m with all counters at zero.
func New(m style.Mode, opts ...Option) *Assigner {
	a := &Assigner{mode: m}
	for _, opt := range opts {
		opt(a)
	}

	a.counts = map[style.Color]int{}
	for _, c := range style.Palette() {
		if c.Neutral() && !a.neutral {
			continue
		}

		a.order = append(a.order, c)
		a.counts[c] = 0
	}

	return a
}

// Mode returns the current assignment mode.
func (a *Assigner) Mode() style.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.mode
}

// SetMode changes the strategy used by later calls to [Assigner.Assign].
// Counters are kept.
func (a *Assigner) SetMode(m style.Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mode = m
}

// Assign picks the color for md. parent is the metadata of the process md is
// registered under, or nil for a main process.
func (a *Assigner) Assign(md, parent process.Metadata) style.Color {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.mode {
	case style.Colored:
		if p, ok := parent.(process.Sub); ok && p.Color != style.NoColor {
			return p.Color
		}

		return a.leastUsed()
	case style.Docker:
		if _, ok := md.(process.Sub); ok && parent != nil {
			if c := parent.Details().Color; c != style.NoColor {
				return c
			}
		}

		return a.leastUsed()
	case style.Classic:
	}

	return style.White
}

// leastUsed returns the first color in palette order with the lowest count
// and records the use. Callers must hold the lock.
func (a *Assigner) leastUsed() style.Color {
	best := a.order[0]
	for _, c := range a.order[1:] {
		if a.counts[c] < a.counts[best] {
			best = c
		}
	}

	a.counts[best]++

	return best
}

// Usage returns a snapshot of the counters in palette order.
func (a *Assigner) Usage() []Usage {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Usage, 0, len(a.order))
	for _, c := range a.order {
		out = append(out, Usage{Color: c, Count: a.counts[c]})
	}

	return out
}
