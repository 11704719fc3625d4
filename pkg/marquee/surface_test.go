package marquee

import (
	"sync"
	"testing"
	"time"
)

// recordingSurface captures every frame and clear the render loop issues.
type recordingSurface struct {
	width int

	mu     sync.Mutex
	frames []string
	clears int
	dirty  bool

	frameCh chan string
}

func newRecordingSurface(width int) *recordingSurface {
	return &recordingSurface{width: width, frameCh: make(chan string, 4096)}
}

func (s *recordingSurface) Width() int { return s.width }

func (s *recordingSurface) WriteInPlace(text string) {
	s.mu.Lock()
	s.frames = append(s.frames, text)
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.frameCh <- text:
	default:
	}
}

func (s *recordingSurface) ClearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.clears++
		s.dirty = false
	}
}

func (s *recordingSurface) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *recordingSurface) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func (s *recordingSurface) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// nextFrame waits for the next drawn frame.
func (s *recordingSurface) nextFrame(t *testing.T) string {
	t.Helper()
	select {
	case f := <-s.frameCh:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return ""
	}
}

// drain discards frames already queued.
func (s *recordingSurface) drain() {
	for {
		select {
		case <-s.frameCh:
		default:
			return
		}
	}
}
