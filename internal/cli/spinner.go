package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/uxl/pkg/pipeline"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on w while a pipeline stage runs. The
// message can change between stages; the line is cleared on Stop.
type spinner struct {
	w       io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started bool
	once    sync.Once

	mu      sync.Mutex
	message string
	width   int // Cells written by the last frame
}

// newSpinner returns a spinner that stops on its own when ctx ends.
func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// renderMessage describes what runRender is about to produce,
// e.g. "Rendering list in shop.uxl (wireframe: svg, pdf)".
func renderMessage(opts pipeline.Options) string {
	name := opts.SourceName
	if name == "" {
		name = "stdin"
	}
	what := name
	if opts.Page != "" && opts.VizType == pipeline.VizTypeWireframe {
		what = opts.Page + " in " + name
	}
	return fmt.Sprintf("Rendering %s (%s: %s)", what, opts.VizType, strings.Join(opts.Formats, ", "))
}

// Start begins the animation.
func (s *spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.frame(spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Update replaces the message shown from the next frame on.
func (s *spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *spinner) frame(f string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := f + " " + s.message
	pad := max(s.width-runewidth.StringWidth(line), 0)
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(f), StyleDim.Render(s.message), strings.Repeat(" ", pad))
	s.width = runewidth.StringWidth(line)
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		if s.started {
			<-s.stopped
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the command context ended, as opposed to Stop.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
