package marquee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMarquee(t *testing.T, surface Surface) *Marquee {
	t.Helper()
	m := New(context.Background(), surface, Options{
		Text:     "AB",
		Speed:    time.Millisecond,
		MinSpeed: time.Millisecond,
		IdlePoll: 5 * time.Millisecond,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	})
	return m
}

func TestMarquee_New_When_ZeroSpeed(t *testing.T) {
	m := New(context.Background(), newRecordingSurface(4), Options{Text: "x"})
	assert.Equal(t, DefaultSpeed, m.Status().Speed)
	assert.Equal(t, DefaultMinSpeed, m.Floor())
	assert.Equal(t, Stopped, m.Status().State)
	assert.False(t, m.Alive())
}

func TestMarquee_Start_SpawnsOnce(t *testing.T) {
	surface := newRecordingSurface(4)
	m := newTestMarquee(t, surface)
	m.SetSpeed(50 * time.Millisecond)

	require.True(t, m.Start())
	assert.False(t, m.Start(), "second start is a no-op")

	assert.Equal(t, int32(1), m.spawns.Load())
	assert.True(t, m.Alive())
	assert.Equal(t, "AB", m.Status().Text)
	assert.Equal(t, 50*time.Millisecond, m.Status().Speed)
}

func TestMarquee_StopStart_ReusesRenderTask(t *testing.T) {
	surface := newRecordingSurface(4)
	m := newTestMarquee(t, surface)

	require.True(t, m.Start())
	surface.nextFrame(t)

	stopped, err := m.Stop(context.Background())
	require.NoError(t, err)
	require.True(t, stopped)
	assert.False(t, surface.Dirty(), "Stop returns only after the line is cleared")
	assert.True(t, m.Alive(), "render task parks instead of exiting")

	surface.drain()
	require.True(t, m.Start())
	assert.Equal(t, "AB  ", surface.nextFrame(t), "restart begins at cursor 0")
	assert.Equal(t, int32(1), m.spawns.Load())
}

func TestMarquee_Stop_When_NotRunning(t *testing.T) {
	m := newTestMarquee(t, newRecordingSurface(4))

	stopped, err := m.Stop(context.Background())
	assert.NoError(t, err)
	assert.False(t, stopped)
}

func TestMarquee_Shutdown_JoinsRenderTask(t *testing.T) {
	surface := newRecordingSurface(4)
	m := New(context.Background(), surface, Options{Text: "AB", Speed: time.Millisecond, MinSpeed: time.Millisecond})

	require.True(t, m.Start())
	surface.nextFrame(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))

	assert.False(t, m.Alive())
	assert.False(t, surface.Dirty(), "exit leaves the line cleared")
	assert.False(t, m.Start(), "no restart after shutdown")
}

func TestMarquee_Shutdown_When_NeverStarted(t *testing.T) {
	m := New(context.Background(), newRecordingSurface(4), Options{Text: "AB"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, m.Shutdown(ctx))
	assert.Zero(t, m.spawns.Load())
}

func TestMarquee_SetTextAndSpeed(t *testing.T) {
	m := newTestMarquee(t, newRecordingSurface(4))

	assert.Equal(t, "Hello", m.SetText("Hello"))
	assert.Equal(t, time.Millisecond, m.SetSpeed(0))
	assert.Equal(t, 200*time.Millisecond, m.SetSpeed(200*time.Millisecond))

	snap := m.Status()
	assert.Equal(t, "Hello", snap.Text)
	assert.Equal(t, 200*time.Millisecond, snap.Speed)
}
