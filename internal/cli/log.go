// Package cli implements the uxl command-line interface.
//
// This package provides commands for checking UXL documents, computing page
// layouts and navigation maps, rendering wireframes, browsing pages
// interactively and serving the HTTP preview service. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Parse and validate a document, printing diagnostics
//   - parse: Print the document tree as JSON
//   - layout: Compute page layouts as JSON
//   - map: Lay out the navigation map (json, svg, png, pdf, dot)
//   - render: Draw page wireframes (svg, png, pdf, json)
//   - inspect: Browse pages and follow GOTO links in the terminal
//   - serve: Run the HTTP preview service
//   - cache: Manage the layout and artifact cache
//
// # Configuration
//
// Every command reads the TOML configuration from --config, $UXL_CONFIG or
// ~/.config/uxl/config.toml. --permissive overrides the configured mode.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/uxl/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: timestamps as "15:04:05.00", messages
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline stage of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the stage's key/value pairs and the elapsed time, e.g.
// "Checked shop.uxl pages=5 nodes=31 edges=6 elapsed=3ms".
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the command handlers.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts that never went through loadConfig.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
