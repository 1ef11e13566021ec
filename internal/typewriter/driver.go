// Package typewriter drives the hero's role text: it types a phrase one
// character at a time, holds it, deletes it, and moves on to the next
// phrase, forever.
//
// A Driver owns exactly one pending timer. Every tick applies one
// transition (see Next) and schedules the following tick with the delay
// of the new mode. Rendering surfaces read the text through Text,
// Snapshot or Subscribe; nothing outside the Driver mutates its state.
package typewriter

import (
	"log/slog"
	"sync"

	"github.com/shreyaw333/portfolio/internal/clock"
)

// Driver is one running typewriter. Create one per view with New and
// Close it when the view goes away.
type Driver struct {
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	cfg     Config
	state   State
	timer   *clock.Timer
	gen     uint64
	running bool
	closed  bool

	nextSub int
	subs    map[int]chan State
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the time source. The default is clock.Real().
func WithClock(c clock.Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// New validates cfg and returns a stopped driver in the initial state.
func New(cfg Config, opts ...Option) (*Driver, error) {
	norm, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	d := &Driver{
		clock:  clock.Real(),
		logger: slog.Default(),
		cfg:    norm,
		state:  Initial(norm.Phrases),
		subs:   make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Config returns the normalized configuration in use.
func (d *Driver) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.cfg
	c.Phrases = append([]string(nil), d.cfg.Phrases...)
	return c
}

// Start schedules the first tick. Starting a running driver does nothing.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.running {
		return nil
	}
	d.running = true
	d.scheduleLocked()
	d.logger.Debug("Typewriter started", "phrases", len(d.cfg.Phrases))
	return nil
}

// Text returns the characters currently on screen.
func (d *Driver) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Text
}

// Snapshot returns the full current state.
func (d *Driver) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Running reports whether a tick is scheduled.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Subscribe returns a channel that receives the current state at once and
// then every new state. The channel holds one value; a slow reader only
// ever sees the latest state. The channel is closed by Close or by the
// returned cancel func.
func (d *Driver) Subscribe() (<-chan State, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan State, 1)
	if d.closed {
		close(ch)
		return ch, func() {}
	}

	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	ch <- d.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if sub, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(sub)
			}
		})
	}
}

// Reconfigure cancels the pending tick, installs cfg with a fresh initial
// state, and reschedules if the driver was running.
func (d *Driver) Reconfigure(cfg Config) error {
	norm, err := cfg.normalize()
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	d.cancelLocked()
	d.cfg = norm
	d.state = Initial(norm.Phrases)
	d.publishLocked()
	if d.running {
		d.scheduleLocked()
	}
	d.logger.Debug("Typewriter reconfigured", "phrases", len(norm.Phrases))
	return nil
}

// Close cancels the pending tick and closes all subscriptions. After
// Close the state never changes again.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.running = false
	d.cancelLocked()
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
	d.logger.Debug("Typewriter closed")
}

// scheduleLocked arms the single pending timer for the current mode.
func (d *Driver) scheduleLocked() {
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.cfg.Delay(d.state.Mode), func() {
		d.tick(gen)
	})
}

// cancelLocked stops the pending timer and invalidates any callback that
// may already be running.
func (d *Driver) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Driver) tick(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen || !d.running {
		return
	}

	prev := d.state
	d.state = Next(d.cfg.Phrases, d.state)
	if d.state.Index != prev.Index {
		d.logger.Debug("Typewriter advanced", "index", d.state.Index)
	}
	d.publishLocked()
	d.scheduleLocked()
}

func (d *Driver) publishLocked() {
	for _, ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		ch <- d.state
	}
}
