package observability

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline, cache and HTTP event to a logger at debug
// level. Failures are logged at warn level.
type LogHooks struct {
	log *log.Logger
}

// NewLogHooks returns hooks that report to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{log: l.WithPrefix("hooks")}
}

// Install registers h for all three hook sets.
func Install(h *LogHooks) {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) done(msg string, err error, keyvals ...any) {
	if err != nil {
		h.log.Warn(msg+" failed", append(keyvals, "err", err)...)
		return
	}
	h.log.Debug(msg, keyvals...)
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.log.Debug("parse", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, pages int, d time.Duration, err error) {
	h.done("parsed", err, "source", source, "pages", pages, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, page string, nodes int) {
	h.log.Debug("layout", "page", page, "nodes", nodes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, page string, passes int, d time.Duration, err error) {
	h.done("laid out", err, "page", page, "passes", passes, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.log.Debug("render", "formats", strings.Join(formats, ","))
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("rendered", err, "formats", strings.Join(formats, ","), "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.log.Debug("cache hit", "stage", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.log.Debug("cache miss", "stage", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.log.Debug("cache set", "stage", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.log.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.log.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.log.Warn("request failed", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
