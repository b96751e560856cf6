package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// captureOutput collects spinner output safely across goroutines.
type captureOutput struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (c *captureOutput) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.WriteString(s)
}

func (c *captureOutput) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func TestSpinnerLifecycle(t *testing.T) {
	out := &captureOutput{}
	s := NewSpinner("Cloning web01")
	s.SetOutput(out.write)

	assert.Equal(t, SpinnerPending, s.State())

	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())

	time.Sleep(150 * time.Millisecond)
	s.Success()

	assert.Equal(t, SpinnerSuccess, s.State())
	assert.Contains(t, out.String(), "Cloning web01")
	assert.Contains(t, out.String(), SymbolComplete)
}

func TestSpinnerFail(t *testing.T) {
	out := &captureOutput{}
	s := NewSpinner("Uploading")
	s.SetOutput(out.write)

	s.Start()
	s.Fail()

	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, out.String(), SymbolFail)
}

func TestSpinnerSkip(t *testing.T) {
	out := &captureOutput{}
	s := NewSpinner("Snapshotting")
	s.SetOutput(out.write)

	s.Start()
	s.Skip()

	assert.Equal(t, SpinnerSkipped, s.State())
	assert.Contains(t, out.String(), SymbolSkipped)
}

func TestSpinnerDoubleStart(t *testing.T) {
	out := &captureOutput{}
	s := NewSpinner("work")
	s.SetOutput(out.write)

	s.Start()
	s.Start() // second start is a no-op
	s.Stop()

	assert.Equal(t, SpinnerInProgress, s.State())
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinner("idle")
	assert.NotPanics(t, func() { s.Stop() })
}

func TestSpinnerLabel(t *testing.T) {
	s := NewSpinner("first")
	assert.Equal(t, "first", s.Label())

	s.SetLabel("second")
	assert.Equal(t, "second", s.Label())
}

func TestSpinnerElapsed(t *testing.T) {
	s := NewSpinner("work")
	assert.Equal(t, time.Duration(0), s.Elapsed())

	s.SetOutput(func(string) {})
	s.Start()
	time.Sleep(20 * time.Millisecond)
	assert.Greater(t, s.Elapsed(), time.Duration(0))
	s.Stop()
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.05s", formatDuration(50*time.Millisecond))
	assert.Equal(t, "1.2s", formatDuration(1200*time.Millisecond))
}
