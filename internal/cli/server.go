package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/rtree/pkg/buildinfo"
	"github.com/matzehuels/rtree/pkg/errors"
	"github.com/matzehuels/rtree/pkg/observability"
	"github.com/matzehuels/rtree/pkg/pipeline"
)

const (
	// requestTimeout bounds one render.
	requestTimeout = 30 * time.Second

	// maxBodySize leaves room for JSON string escaping of the input.
	maxBodySize = 2 * pipeline.MaxInputSize

	requestIDHeader = "X-Request-ID"
)

// server serves reports and diagrams over HTTP.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// renderRequest is the body of POST /v1/report and POST /v1/dot. The input
// document travels as a string; every other field is a pipeline option.
type renderRequest struct {
	Input string `json:"input"`
	pipeline.Options
}

// reportResponse is the body returned by POST /v1/report.
type reportResponse struct {
	Report    string `json:"report"`
	Nodes     int    `json:"nodes,omitempty"`
	Cached    bool   `json:"cached"`
	InputHash string `json:"input_hash"`
}

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger}
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Post("/report", s.handleReport)
		r.Post("/dot", s.handleDOT)
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

// handleReport handles POST /v1/report.
func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	opts.Output = pipeline.OutputReport

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Report:    string(result.Output),
		Nodes:     result.Stats.NodeCount,
		Cached:    result.CacheHit,
		InputHash: result.InputHash,
	})
}

// handleDOT handles POST /v1/dot. The body is the raw DOT document, or SVG
// when the request sets "output": "svg".
func (s *server) handleDOT(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	switch opts.Output {
	case "":
		opts.Output = pipeline.OutputDOT
	case pipeline.OutputDOT, pipeline.OutputSVG:
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "output must be dot or svg, got %q", opts.Output))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := "text/vnd.graphviz; charset=utf-8"
	if opts.Output == pipeline.OutputSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

func (s *server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var req renderRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return pipeline.Options{}, false
	}
	opts := req.Options
	opts.Input = []byte(req.Input)
	return opts, true
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID propagates or assigns an X-Request-ID.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestIDFrom(r.Context())
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path, id)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, id, status, duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"request_id", id,
			"duration", duration)
	})
}

// =============================================================================
// Responses
// =============================================================================

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
