package log

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher is an [io.Writer] that fans out log entries to subscribers.
//
// A console logger performs exactly one Write per entry, so every value
// received from [Subscription.C] is one complete entry. Writes never block:
// when a subscriber falls behind, its oldest pending entry is dropped and
// counted in [Subscription.Dropped]. With [WithHistory], the most recent
// entries are kept and replayed to new subscribers. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	ring        entryRing
	bufSize     int
	mu          sync.Mutex
	closed      bool
}

// NewPublisher creates a [Publisher] with the given options.
// The default buffer size is 64 and history is off.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// WithHistory keeps the last n entries and replays them to every new
// subscription, up to its buffer size. Values less than 1 disable history.
func WithHistory(n int) PublisherOption {
	return func(p *Publisher) {
		p.ring = newEntryRing(n)
	}
}

// Write records a copy of entry in the history and delivers it to every
// active subscriber. Closed subscriptions are released here. Write always
// returns len(entry), nil.
func (p *Publisher) Write(entry []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(entry), nil
	}

	e := make([]byte, len(entry))
	copy(e, entry)

	p.ring.push(e)
	p.deliver(e)

	return len(entry), nil
}

// deliver sends e to live subscribers and drops closed ones. Callers must
// hold the lock.
func (p *Publisher) deliver(e []byte) {
	n := 0

	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			close(sub.ch)

			continue
		}

		sub.send(e)

		p.subscribers[n] = sub
		n++
	}

	clear(p.subscribers[n:])
	p.subscribers = p.subscribers[:n]
}

// History returns the retained entries, oldest first.
func (p *Publisher) History() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ring.entries()
}

// Subscribe creates and registers a new [Subscription], preloaded with the
// most recent history entries that fit in its buffer. On a closed Publisher
// the returned subscription's channel is already closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		ch: make(chan []byte, p.bufSize),
	}

	if p.closed {
		close(sub.ch)

		return sub
	}

	backlog := p.ring.entries()
	for _, e := range backlog[max(len(backlog)-p.bufSize, 0):] {
		sub.ch <- e
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close closes every subscription channel and stops delivery. Later writes
// are discarded. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		close(sub.ch)
	}

	p.subscribers = nil

	return nil
}

// Subscription receives log entries from a [Publisher].
type Subscription struct {
	ch      chan []byte
	dropped atomic.Int64
	closed  atomic.Bool
}

// send delivers e, evicting the oldest pending entry when the buffer is
// full. Only the Publisher sends, under its lock.
func (s *Subscription) send(e []byte) {
	for {
		select {
		case s.ch <- e:
			return
		default:
		}

		select {
		case <-s.ch:
			s.dropped.Add(1)
		default:
		}
	}
}

// C returns the read-only channel that delivers log entries, one complete
// entry per value.
// Callers must not modify the returned byte slices.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Dropped returns how many entries were evicted because the subscriber fell
// behind.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Close marks the subscription as closed. The Publisher closes the channel
// on its next Write or Close call. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}

// entryRing is a fixed-capacity FIFO of entries. The zero value keeps
// nothing.
type entryRing struct {
	buf   [][]byte
	start int
	n     int
}

func newEntryRing(size int) entryRing {
	if size < 1 {
		return entryRing{}
	}

	return entryRing{buf: make([][]byte, size)}
}

func (r *entryRing) push(e []byte) {
	if len(r.buf) == 0 {
		return
	}

	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = e
		r.n++

		return
	}

	r.buf[r.start] = e
	r.start = (r.start + 1) % len(r.buf)
}

func (r *entryRing) entries() [][]byte {
	out := make([][]byte, 0, r.n)
	for i := range r.n {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}

	return out
}
