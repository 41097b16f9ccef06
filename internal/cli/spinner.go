package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// spinner draws a progress indicator on a terminal until stopped or until
// its context is canceled. A spinner created with a nil writer draws nothing.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string

	mu      sync.Mutex
	started bool
	closed  bool
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// spinner returns a spinner on c.Err when it is a terminal, and a silent one
// otherwise.
func (c *CLI) spinner(ctx context.Context, message string) *spinner {
	var w io.Writer
	if c.interactive() {
		w = c.Err
	}
	return newSpinner(ctx, w, message)
}

// Start begins the animation.
func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil || s.started {
		return
	}
	s.started = true

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// Stop stops the animation and clears the line. It may be called more than
// once, and before Start.
func (s *spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()

	if !started {
		return
	}
	<-s.stopped
	s.clearLine()
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Canceled reports whether the spinner's context has ended, either through
// Stop or through cancellation of the parent context.
func (s *spinner) Canceled() bool {
	return s.ctx.Err() != nil
}
