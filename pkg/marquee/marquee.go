package marquee

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options configures a Marquee.
type Options struct {
	Text     string
	Speed    time.Duration
	MinSpeed time.Duration
	IdlePoll time.Duration
	Logger   *slog.Logger
}

// Marquee owns the shared state and the lifecycle of the render task.
// The render task is spawned on the first Start and parks in Idle across
// stop/start cycles; Shutdown joins it.
type Marquee struct {
	ctx      context.Context
	state    *State
	renderer *Renderer
	log      *slog.Logger

	group  errgroup.Group
	spawns atomic.Int32
}

// New creates a stopped marquee drawing to surface. ctx bounds the render
// task; cancelling it stops rendering without a Shutdown.
func New(ctx context.Context, surface Surface, opts Options) *Marquee {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	speed := opts.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	state := NewState(opts.Text, speed, opts.MinSpeed)
	return &Marquee{
		ctx:      ctx,
		state:    state,
		renderer: NewRenderer(state, surface, opts.IdlePoll, log.With("component", "render")),
		log:      log,
	}
}

// State returns the shared state.
func (m *Marquee) State() *State {
	return m.state
}

// Status returns a snapshot of the current state.
func (m *Marquee) Status() Snapshot {
	return m.state.Snapshot()
}

// Start sets the marquee running and spawns the render task if none is
// alive. Returns false if it was already running or has been shut down.
func (m *Marquee) Start() bool {
	changed, version := m.state.SetRunning(true)
	if !changed {
		return false
	}
	if m.state.alive.CompareAndSwap(false, true) {
		n := m.spawns.Add(1)
		m.log.Debug("spawning render task", "spawns", n, "version", version)
		m.group.Go(func() error {
			defer m.state.alive.Store(false)
			return m.renderer.Run(m.ctx)
		})
	}
	m.log.Debug("marquee started", "version", version)
	return true
}

// Stop pauses the marquee and blocks until the render task has cleared
// its line. Returns false if it was not running.
func (m *Marquee) Stop(ctx context.Context) (bool, error) {
	changed, version := m.state.SetRunning(false)
	if !changed {
		return false, nil
	}
	if !m.state.alive.Load() {
		return true, nil
	}
	if err := m.renderer.WaitIdle(ctx, version); err != nil {
		return true, err
	}
	m.log.Debug("marquee stopped", "version", version)
	return true, nil
}

// SetText replaces the banner text and returns the stored value.
func (m *Marquee) SetText(text string) string {
	stored := m.state.SetText(text)
	m.log.Debug("text updated", "text", stored)
	return stored
}

// SetSpeed stores d clamped to the floor and returns the stored value.
func (m *Marquee) SetSpeed(d time.Duration) time.Duration {
	stored := m.state.SetSpeed(d)
	m.log.Debug("speed updated", "requested", d, "stored", stored)
	return stored
}

// Floor returns the minimum tick interval.
func (m *Marquee) Floor() time.Duration {
	return m.state.Floor()
}

// Shutdown stops the marquee permanently and waits for the render task
// to return. Safe when no render task was ever spawned.
func (m *Marquee) Shutdown(ctx context.Context) error {
	m.state.Shutdown()

	done := make(chan error, 1)
	go func() { done <- m.group.Wait() }()

	select {
	case err := <-done:
		m.log.Debug("render task joined", "err", err)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Alive reports whether a render task is currently active.
func (m *Marquee) Alive() bool {
	return m.state.alive.Load()
}
