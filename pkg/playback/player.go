package playback

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
)

// State is the render state.
type State string

const (
	StateStopped State = "stopped"
	StatePaused  State = "paused"
	StatePlaying State = "playing"
)

// ParseState converts s to a [State].
func ParseState(s string) (State, error) {
	switch st := State(s); st {
	case StateStopped, StatePaused, StatePlaying:
		return st, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown render state %q (want stopped, paused or playing)", s)
}

var (
	// ErrCancelled is returned by Export when the cancellation flag was set.
	ErrCancelled = &errors.Error{Code: errors.ErrCodeCancelled, Message: "export cancelled"}

	// ErrBusy is returned by Export when another export is running.
	ErrBusy = &errors.Error{Code: errors.ErrCodeBusy, Message: "an export is already running"}
)

// Event is delivered to observers after every state or frame change.
type Event struct {
	State State
	Frame int
}

// CaptureFunc renders and stores one frame.
type CaptureFunc func(ctx context.Context, frame int) error

// Option configures a Player.
type Option func(*Player)

// WithObserver registers f to receive every change, in order.
// Observers run synchronously and must not call Play, Pause, Stop, End or
// SetCurrentFrame.
func WithObserver(f func(Event)) Option {
	return func(p *Player) { p.observers = append(p.observers, f) }
}

// WithFrame sets the initial frame.
func WithFrame(frame int) Option {
	return func(p *Player) { p.frame = frame }
}

// Player is the playback state machine of one rendering surface.
type Player struct {
	clock     timeline.Clock
	observers []func(Event)

	emit  sync.Mutex // serializes mutate+deliver so events arrive in order
	mu    sync.Mutex
	st    State
	frame int

	cancelled atomic.Bool
	exporting atomic.Bool
}

// NewPlayer returns a paused player at frame 1.
func NewPlayer(clock timeline.Clock, opts ...Option) *Player {
	p := &Player{clock: clock, st: StatePaused, frame: 1}
	for _, opt := range opts {
		opt(p)
	}
	p.frame = p.clamp(p.frame)
	return p
}

// Clock returns the player's clock.
func (p *Player) Clock() timeline.Clock { return p.clock }

// TotalFrames returns the number of frames of the clock.
func (p *Player) TotalFrames() int { return p.clock.TotalFrames() }

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// CurrentFrame returns the current 1-based frame.
func (p *Player) CurrentFrame() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// CurrentTime returns the animation time of the current frame.
func (p *Player) CurrentTime() float64 { return p.clock.CurrentTime(p.CurrentFrame()) }

// Offset returns the seek delay of the current frame.
func (p *Player) Offset() float64 { return p.clock.Offset(p.CurrentFrame()) }

// Snapshot returns the state and frame atomically.
func (p *Player) Snapshot() Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Event{State: p.st, Frame: p.frame}
}

// Play switches to playing.
func (p *Player) Play() {
	p.update(func() { p.st = StatePlaying })
}

// Pause switches to paused.
func (p *Player) Pause() {
	p.update(func() { p.st = StatePaused })
}

// Toggle switches between playing and paused.
func (p *Player) Toggle() {
	p.update(func() {
		if p.st == StatePlaying {
			p.st = StatePaused
		} else {
			p.st = StatePlaying
		}
	})
}

// SetCurrentFrame seeks to frame, clamped to the clock range.
// The state is left unchanged.
func (p *Player) SetCurrentFrame(frame int) {
	p.update(func() { p.frame = p.clamp(frame) })
}

// Stop rewinds to frame 1 through the stopped state.
func (p *Player) Stop() <-chan struct{} { return p.pulse(1) }

// End seeks to the last frame through the stopped state.
func (p *Player) End() <-chan struct{} { return p.pulse(p.clock.TotalFrames()) }

func (p *Player) pulse(frame int) <-chan struct{} {
	p.update(func() {
		p.frame = p.clamp(frame)
		p.st = StateStopped
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.update(func() {
			if p.st == StateStopped {
				p.st = StatePaused
			}
		})
	}()
	return done
}

// update applies f and notifies observers when the state or frame changed.
func (p *Player) update(f func()) {
	p.emit.Lock()
	defer p.emit.Unlock()

	p.mu.Lock()
	before := Event{State: p.st, Frame: p.frame}
	f()
	after := Event{State: p.st, Frame: p.frame}
	p.mu.Unlock()

	if after == before {
		return
	}
	for _, o := range p.observers {
		o(after)
	}
}

func (p *Player) clamp(frame int) int {
	return max(1, min(frame, p.clock.TotalFrames()))
}

// CancelExport requests the running export to stop at the next frame.
func (p *Player) CancelExport() { p.cancelled.Store(true) }

// Exporting reports whether an export is running.
func (p *Player) Exporting() bool { return p.exporting.Load() }

// Export captures every frame in order. It returns ErrCancelled (also
// reported by errors.IsCancelled) when cancelled through CancelExport or
// ctx, ErrBusy when another export is running, and the capture error of the
// failing frame otherwise.
func (p *Player) Export(ctx context.Context, capture CaptureFunc) error {
	if !p.exporting.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer p.exporting.Store(false)
	p.cancelled.Store(false)

	select {
	case <-p.Stop():
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}

	total := p.clock.TotalFrames()
	for frame := 1; frame <= total; frame++ {
		p.SetCurrentFrame(frame)
		if p.cancelled.Load() {
			return fmt.Errorf("frame %d: %w", frame, ErrCancelled)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("frame %d: %w: %w", frame, ErrCancelled, err)
		}
		if err := capture(ctx, frame); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return nil
}
