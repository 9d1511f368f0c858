package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a goroutine-safe bytes.Buffer for the animation loop.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_NotAnimated(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Querying 10.0.0.1", false)

	assert.Equal(t, SpinnerPending, s.State())
	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())
	assert.Empty(t, buf.String(), "nothing is drawn until the final line")

	s.Success()
	assert.Equal(t, SpinnerSuccess, s.State())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, SymbolComplete+" Querying 10.0.0.1 "))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.NotContains(t, out, "\r")
}

func TestSpinner_Fail(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Querying 10.0.0.2", false)
	s.Start()
	s.Fail("authentication failed")

	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, buf.String(), SymbolFail+" Querying 10.0.0.2")
	assert.Contains(t, buf.String(), "authentication failed")
}

func TestSpinner_Animated(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Querying", true)
	s.Start()
	s.Start() // second start is a no-op
	time.Sleep(200 * time.Millisecond)
	s.Skip("")

	out := buf.String()
	assert.Contains(t, out, "\r")
	assert.Contains(t, out, "Querying...")
	assert.Contains(t, out, SymbolSkipped+" Querying")
	assert.Equal(t, SpinnerSkipped, s.State())
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "x", true)
	s.Stop()
	assert.Equal(t, SpinnerPending, s.State())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.05s", formatDuration(50*time.Millisecond))
	assert.Equal(t, "1.2s", formatDuration(1200*time.Millisecond))
}
