package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/uxl/pkg/cache"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/observability"
	"github.com/matzehuels/uxl/pkg/pipeline"
	"github.com/matzehuels/uxl/pkg/wire"
)

// contentTypes maps render formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// parseResponse is the body of POST /api/parse.
type parseResponse struct {
	DocumentID string        `json:"document_id"`
	SourceHash string        `json:"source_hash"`
	Document   wire.Document `json:"document"`
}

// layoutResponse is the body of POST /api/layout.
type layoutResponse struct {
	DocumentID string        `json:"document_id"`
	Cached     bool          `json:"cached"`
	Layouts    []wire.Layout `json:"layouts"`
}

// mapResponse is the body of POST /api/map.
type mapResponse struct {
	DocumentID string   `json:"document_id"`
	Cached     bool     `json:"cached"`
	Map        wire.Map `json:"map"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		DocumentID: documentID(opts),
		SourceHash: opts.SourceHash(),
		Document:   wire.FromDocument(doc),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.VizType = pipeline.VizTypeWireframe
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		DocumentID: result.DocumentID,
		Cached:     result.CacheInfo.LayoutHit,
		Layouts:    result.Layouts,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.VizType = pipeline.VizTypeMap
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapResponse{
		DocumentID: result.DocumentID,
		Cached:     result.CacheInfo.LayoutHit,
		Map:        *result.Map,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.VizType = q.Get("type")
	if opts.VizType == "" {
		opts.VizType = pipeline.VizTypeWireframe
	}
	opts.Formats = []string{format}
	opts.Style = q.Get("style")
	opts.Links = q.Get("links") == "true"
	opts.Detailed = q.Get("detailed") == "true"

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// options reads the UXL body and the shared query parameters into pipeline
// options seeded from the configuration.
func (s *Server) options(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts, err := s.cfg.PipelineOptions()
	if err != nil {
		return pipeline.Options{}, err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, pipeline.MaxSourceSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Options{}, uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "source too large (max %d bytes)", pipeline.MaxSourceSize)
		}
		return pipeline.Options{}, uxlerrors.Wrap(uxlerrors.ErrCodeInvalidInput, err, "read request body")
	}

	q := r.URL.Query()
	opts.Source = string(body)
	opts.SourceName = q.Get("name")
	if mode := q.Get("mode"); mode != "" {
		opts.Mode = mode
	}
	opts.Page = q.Get("page")
	if opts.Width, err = intParam(q.Get("width")); err != nil {
		return pipeline.Options{}, err
	}
	if opts.Height, err = intParam(q.Get("height")); err != nil {
		return pipeline.Options{}, err
	}
	opts.Refresh = q.Get("refresh") == "true"
	opts.Logger = s.log
	return opts, nil
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, uxlerrors.New(uxlerrors.ErrCodeInvalidInput, "invalid size %q", v)
	}
	return n, nil
}

func documentID(opts pipeline.Options) string {
	return cache.DocumentID([]byte(opts.Source)).String()
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body of every failed request. Parse errors carry
// their position and snippet.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Source  string `json:"source,omitempty"`
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{
		Error: uxlerrors.UserMessage(err),
		Code:  string(uxlerrors.GetCode(err)),
	}
	if pe, ok := uxlerrors.AsParseError(err); ok {
		resp.Error = pe.Message
		resp.Source = pe.Source
		resp.Line = pe.Line
		resp.Col = pe.Col
		resp.Snippet = pe.Snippet()
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, resp)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch uxlerrors.GetCode(err) {
	case uxlerrors.ErrCodeParse:
		return http.StatusUnprocessableEntity
	case uxlerrors.ErrCodeInvalidInput, uxlerrors.ErrCodeInvalidFormat, uxlerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case uxlerrors.ErrCodeNotFound, uxlerrors.ErrCodePageNotFound:
		return http.StatusNotFound
	case uxlerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
