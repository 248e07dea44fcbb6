package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// Stop cancels the spinner's own context.
	if !s.Cancelled() {
		t.Error("Cancelled() should be true after Stop")
	}
}

func TestSpinnerQuietWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Testing quiet...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()
	cancel()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	var status bytes.Buffer
	prev := statusOut
	statusOut = &status
	t.Cleanup(func() { statusOut = prev })

	s := newSpinner(context.Background(), "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")

	if !bytes.Contains(status.Bytes(), []byte("Failed!")) {
		t.Errorf("status output %q should contain the error", status.String())
	}
}
