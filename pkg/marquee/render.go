package marquee

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

// Surface is the terminal capability the render loop draws through.
type Surface interface {
	Width() int
	WriteInPlace(text string)
	ClearLine()
}

// Renderer is the background render loop. It is Idle while the state is
// stopped and Scrolling while running; it exits on shutdown.
type Renderer struct {
	state    *State
	surface  Surface
	idlePoll time.Duration
	log      *slog.Logger

	// Owned by the Run goroutine.
	buf    *ScrollBuffer
	cursor int

	mu    sync.Mutex
	acked uint64        // highest state version observed while idle
	ackCh chan struct{} // closed and replaced when acked advances
}

// NewRenderer creates a render loop over state drawing to surface.
func NewRenderer(state *State, surface Surface, idlePoll time.Duration, log *slog.Logger) *Renderer {
	if idlePoll <= 0 {
		idlePoll = DefaultIdlePoll
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		state:    state,
		surface:  surface,
		idlePoll: idlePoll,
		log:      log,
		ackCh:    make(chan struct{}),
	}
}

// Run drives the loop until shutdown or ctx is done. The output line is
// always cleared before Run returns.
func (r *Renderer) Run(ctx context.Context) error {
	defer r.acknowledge(math.MaxUint64)
	defer r.surface.ClearLine()

	scrolling := false
	for {
		snap, wake := r.state.Watch()

		select {
		case <-r.state.Done():
			r.log.Debug("render loop shutting down")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !snap.Running() {
			if scrolling {
				scrolling = false
				r.surface.ClearLine()
				r.log.Debug("render loop idle", "version", snap.Version)
			}
			r.acknowledge(snap.Version)
			if err := r.wait(ctx, wake, r.idlePoll); err != nil {
				return err
			}
			continue
		}

		if !scrolling {
			scrolling = true
			r.buf = nil
			r.log.Debug("render loop scrolling", "version", snap.Version)
		}
		r.tick(snap)
		if err := r.wait(ctx, wake, snap.Speed); err != nil {
			return err
		}
	}
}

// tick draws one frame and advances the cursor.
func (r *Renderer) tick(snap Snapshot) {
	if r.buf == nil || r.buf.Source() != snap.Text {
		r.buf = NewScrollBuffer(snap.Text, r.surface.Width())
		r.cursor = 0
		r.log.Debug("scroll buffer rebuilt", "width", r.buf.Width(), "len", r.buf.Len())
	}

	// Wide runes would wrap the terminal line and break the in-place rewrite.
	frame := runewidth.Truncate(r.buf.Slice(r.cursor), r.buf.Width(), "")
	r.surface.WriteInPlace(frame)
	r.cursor = (r.cursor + 1) % r.buf.Len()
}

// wait blocks for d, returning early when wake is closed.
func (r *Renderer) wait(ctx context.Context, wake <-chan struct{}, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-wake:
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (r *Renderer) acknowledge(version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if version <= r.acked {
		return
	}
	r.acked = version
	close(r.ackCh)
	r.ackCh = make(chan struct{})
}

// WaitIdle blocks until the loop has been observed idle (line cleared) at
// a state version >= version, or has exited.
func (r *Renderer) WaitIdle(ctx context.Context, version uint64) error {
	for {
		r.mu.Lock()
		if r.acked >= version {
			r.mu.Unlock()
			return nil
		}
		ch := r.ackCh
		r.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
