package spinner

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
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

// state reads the running flag and label the way the animation loop does.
func state(s *Spinner) (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.label()
}

func isActive(s *Spinner) bool {
	active, _ := state(s)
	return active
}

func label(s *Spinner) string {
	_, l := state(s)
	return l
}

func TestNewSpinner(t *testing.T) {
	s := New(context.Background(), &syncBuffer{}, "Loading...")
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if got := label(s); got != "Loading..." {
		t.Errorf("label = %q, want %q", got, "Loading...")
	}
	if len(s.frames) != len(Frames) {
		t.Errorf("frames = %d, want %d", len(s.frames), len(Frames))
	}
}

func TestSpinnerStartStop(t *testing.T) {
	buf := &syncBuffer{}
	s := New(context.Background(), buf, "Extracting...")

	if isActive(s) {
		t.Error("Spinner should not be active initially")
	}
	s.Start()
	if !isActive(s) {
		t.Error("Spinner should be active after Start()")
	}

	time.Sleep(250 * time.Millisecond)
	s.Stop()

	if isActive(s) {
		t.Error("Spinner should not be active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "Extracting...") {
		t.Errorf("output %q does not contain the message", output)
	}
	hasFrame := false
	for _, f := range Frames {
		if strings.Contains(output, f) {
			hasFrame = true
			break
		}
	}
	if !hasFrame {
		t.Error("Expected spinner frames in output")
	}
	if !strings.HasSuffix(output, "\r") {
		t.Error("Expected output to end with carriage return")
	}
}

func TestSpinnerProgress(t *testing.T) {
	s := NewProgress(context.Background(), &syncBuffer{}, "Ranking domains", 3, false)

	tests := []struct {
		advances int
		want     string
	}{
		{0, "Ranking domains (0/3)"},
		{2, "Ranking domains (2/3)"},
		{5, "Ranking domains (3/3)"},
	}
	for _, tt := range tests {
		for i := 0; i < tt.advances; i++ {
			s.Advance()
		}
		if got := label(s); got != tt.want {
			t.Errorf("label after %d more steps = %q, want %q", tt.advances, got, tt.want)
		}
	}
}

func TestSpinnerConcurrentAdvance(t *testing.T) {
	s := NewProgress(context.Background(), &syncBuffer{}, "Working", 100, false)
	s.Start()
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Advance()
		}()
	}
	wg.Wait()

	if got := label(s); got != "Working (100/100)" {
		t.Errorf("label = %q, want all steps done", got)
	}
}

func TestSpinnerQuietIsNil(t *testing.T) {
	s := NewProgress(context.Background(), &syncBuffer{}, "Quiet", 2, true)
	if s != nil {
		t.Fatal("NewProgress(quiet) should return nil")
	}
	// nil spinners are safe to use
	s.Start()
	s.Advance()
	s.Stop()
}

func TestSpinnerDoubleStartStop(t *testing.T) {
	s := New(context.Background(), &syncBuffer{}, "Testing...")

	s.Stop()
	s.Start()
	s.Start()
	if !isActive(s) {
		t.Error("Spinner should still be active after second Start()")
	}
	s.Stop()
	s.Stop()
	if isActive(s) {
		t.Error("Spinner should not be active after Stop()")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&syncBuffer{}) {
		t.Error("IsTerminal(buffer) = true, want false")
	}
}
