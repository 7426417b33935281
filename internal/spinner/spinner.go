// Package spinner shows pipeline progress on stderr.
//
// The spinner counts finished steps against a total, so a long run over
// many domains reads "Ranking domains (3/8)". Terminal escape codes are
// only written when the writer is a terminal.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Frames used by every spinner.
var Frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	active  bool
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	message string
	done    int
	total   int
	wg      sync.WaitGroup
}

// New creates a spinner writing to writer. ctx cancels the animation.
func New(ctx context.Context, writer io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  Frames,
		delay:   100 * time.Millisecond,
		writer:  writer,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
	}
}

// NewProgress creates a spinner counting total steps. It returns nil when
// quiet is set; every method is a no-op on a nil spinner.
func NewProgress(ctx context.Context, writer io.Writer, message string, total int, quiet bool) *Spinner {
	if quiet {
		return nil
	}
	s := New(ctx, writer, message)
	s.total = total
	return s
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// already running
	if s.active {
		return
	}

	s.active = true

	s.wg.Add(1)
	go s.run()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}

	s.active = false
	s.cancel()
	s.mu.Unlock()

	// wait for the last frame so the clear below is not overwritten
	s.wg.Wait()

	// erase the line on a terminal; redirected output just gets a carriage return
	if IsTerminal(s.writer) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// Advance marks one more step as finished. Safe for concurrent use.
func (s *Spinner) Advance() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// never report more steps than the total
	if s.total == 0 || s.done < s.total {
		s.done++
	}
}

// label is the text after the frame. Callers hold mu.
func (s *Spinner) label() string {
	if s.total > 0 {
		return fmt.Sprintf("%s (%d/%d)", s.message, s.done, s.total)
	}
	return s.message
}

// run redraws the spinner on every tick until Stop cancels ctx.
func (s *Spinner) run() {
	defer s.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			frame := s.frames[frameIndex%len(s.frames)]
			label := s.label()
			s.mu.RUnlock()

			fmt.Fprintf(s.writer, "\r%s %s", frame, label)
			frameIndex++
		}
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
