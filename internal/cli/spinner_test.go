package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func testSpinner(ctx context.Context, msg string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, msg)
	s.out = &buf
	return s, &buf
}

func TestSpinnerBasic(t *testing.T) {
	s, buf := testSpinner(context.Background(), "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not mark the spinner cancelled")
	}
	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("output = %q, want message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s, _ := testSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	s, buf := testSpinner(context.Background(), "frame 1/3")
	s.Start()
	s.SetMessage("frame %d/%d", 2, 3)
	if got := s.Message(); got != "frame 2/3" {
		t.Errorf("Message() = %q", got)
	}
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	if !strings.Contains(buf.String(), "frame 2/3") {
		t.Errorf("output = %q, want updated message", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := testSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, buf := testSpinner(context.Background(), "never started")
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSpinnerStopWithStatus(t *testing.T) {
	s, _ := testSpinner(context.Background(), "Exporting...")
	var status bytes.Buffer
	s.status = printer{w: &status}
	s.Start()
	s.StopWithSuccess("Exported waves")
	s.StopWithError("Export failed")

	out := status.String()
	if !strings.Contains(out, iconSuccess+" Exported waves") {
		t.Errorf("status = %q, want success line", out)
	}
	if !strings.Contains(out, iconError) {
		t.Errorf("status = %q, want error line", out)
	}
}
