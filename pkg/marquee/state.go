// Package marquee implements the scrolling banner: the shared state both
// loops coordinate through, the scroll buffer math, and the background
// render loop.
package marquee

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Defaults for a new marquee.
const (
	DefaultText     = "Hello, Marquee!"
	DefaultSpeed    = 150 * time.Millisecond
	DefaultMinSpeed = 10 * time.Millisecond
	DefaultIdlePoll = 200 * time.Millisecond
)

// RunState is the run flag observed by the render loop.
type RunState int32

const (
	Stopped RunState = iota
	Running
)

func (r RunState) String() string {
	if r == Running {
		return "running"
	}
	return "stopped"
}

// Snapshot is a consistent copy of the state taken under the lock.
type Snapshot struct {
	Text    string
	Speed   time.Duration
	State   RunState
	Version uint64 // incremented on every mutation
}

// Running reports whether the snapshot was taken while running.
func (s Snapshot) Running() bool {
	return s.State == Running
}

// State is the mutable record shared by the command and render loops.
//
// Text and speed are only touched under mu. The run and alive flags are
// atomics. Every mutation closes the current changed channel and replaces
// it, waking all waiters that took it before the change.
type State struct {
	floor time.Duration

	mu      sync.Mutex
	text    string
	speed   time.Duration
	version uint64
	changed chan struct{}

	running atomic.Bool
	alive   atomic.Bool

	shutdownOnce sync.Once
	done         chan struct{}
}

// NewState creates a stopped state. A non-positive floor falls back to
// DefaultMinSpeed; speed is clamped to the floor.
func NewState(text string, speed, floor time.Duration) *State {
	if floor <= 0 {
		floor = DefaultMinSpeed
	}
	return &State{
		floor:   floor,
		text:    norm.NFC.String(text),
		speed:   clamp(speed, floor),
		changed: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func clamp(d, floor time.Duration) time.Duration {
	if d < floor {
		return floor
	}
	return d
}

// Floor returns the minimum tick interval.
func (s *State) Floor() time.Duration {
	return s.floor
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	snap, _ := s.Watch()
	return snap
}

// Watch returns a snapshot together with a channel that is closed on the
// next mutation after the snapshot was taken.
func (s *State) Watch() (Snapshot, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stopped
	if s.running.Load() {
		st = Running
	}
	return Snapshot{
		Text:    s.text,
		Speed:   s.speed,
		State:   st,
		Version: s.version,
	}, s.changed
}

// Text returns the current banner text.
func (s *State) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Speed returns the current tick interval.
func (s *State) Speed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// Running reports whether the marquee is running.
func (s *State) Running() bool {
	return s.running.Load()
}

// SetText replaces the banner text, normalized to NFC, and returns the
// stored value.
func (s *State) SetText(text string) string {
	text = norm.NFC.String(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.bumpLocked()
	return text
}

// SetSpeed stores d clamped to the floor and returns the stored value.
func (s *State) SetSpeed(d time.Duration) time.Duration {
	d = clamp(d, s.floor)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = d
	s.bumpLocked()
	return d
}

// SetRunning flips the run flag. It reports whether the flag changed and
// the state version after the call. Waiters are only woken on a change.
func (s *State) SetRunning(run bool) (bool, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isShutdown() && run {
		return false, s.version
	}
	if !s.running.CompareAndSwap(!run, run) {
		return false, s.version
	}
	s.bumpLocked()
	return true, s.version
}

// Shutdown stops the marquee permanently. Safe to call more than once.
func (s *State) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.running.Store(false)
		close(s.done)
		s.bumpLocked()
	})
}

// Done is closed once Shutdown has been called.
func (s *State) Done() <-chan struct{} {
	return s.done
}

// IsShutdown reports whether Shutdown has been called.
func (s *State) IsShutdown() bool {
	return s.isShutdown()
}

func (s *State) isShutdown() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// bumpLocked records a mutation and wakes every waiter. Caller holds mu.
func (s *State) bumpLocked() {
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
}
