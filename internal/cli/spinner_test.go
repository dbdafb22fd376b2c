package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerTo(context.Background(), &out, "Copying level1.json...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Copying level1.json...") {
		t.Errorf("output %q missing message", out.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerQuiet(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerTo(context.Background(), &out, "hidden")
	s.quiet = true
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if got := out.String(); got != "" {
		t.Errorf("quiet spinner wrote %q", got)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out lockedBuffer
	s := newSpinnerTo(ctx, &out, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after Stop on a cancelled context")
	}
}

func TestSpinnerStopIsNotCancellation(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerTo(context.Background(), &out, "stop")
	s.quiet = true
	s.Start()
	s.Stop()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop without cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerTo(context.Background(), &out, "stop")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}
