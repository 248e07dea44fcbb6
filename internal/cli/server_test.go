package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/rtree/pkg/cache"
	"github.com/matzehuels/rtree/pkg/errors"
	"github.com/matzehuels/rtree/pkg/observability"
	"github.com/matzehuels/rtree/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, keyPrefix), logger)
	srv := httptest.NewServer(newServer(runner, logger).routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_Report(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]any{"input": sampleJSON, "format": "json"}

	var first reportResponse
	resp := post(t, srv.URL+"/v1/report", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := "\n 1\n ├── 1 ↜ 2\n └── 1 ↜ 3\n"; first.Report != want {
		t.Errorf("report = %q, want %q", first.Report, want)
	}
	if first.Cached || first.Nodes != 3 || first.InputHash == "" {
		t.Errorf("first response = %+v, want fresh with 3 nodes", first)
	}

	var second reportResponse
	resp = post(t, srv.URL+"/v1/report", body)
	if err := json.NewDecoder(resp.Body).Decode(&second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !second.Cached || second.Report != first.Report {
		t.Errorf("second response = %+v, want cached copy", second)
	}
}

func TestServer_ReportOptions(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/report", map[string]any{
		"input":        sampleJSON,
		"max_children": 1,
		"wrap":         "top",
	})
	var got reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := "\n 1\n └── 1 ↜ 3\n"; got.Report != want {
		t.Errorf("report = %q, want %q", got.Report, want)
	}
}

func TestServer_DOT(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/dot", map[string]any{"input": sampleJSON})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("body = %q, want a DOT document", data)
	}
}

func TestServer_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed body", "/v1/report", "{", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"missing input", "/v1/report", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed tree", "/v1/report", `{"input": "{"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad wrap", "/v1/report", `{"input": "x", "format": "paths", "wrap": "middle"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"report output on dot", "/v1/dot", `{"input": "x", "output": "report"}`, http.StatusUnsupportedMediaType, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Error)
			}
			if e.RequestID == "" {
				t.Error("error response should carry the request id")
			}
		})
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/report")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Status != "ok" || h.Build.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestServer_RequestID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("response should carry a generated request id")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != "req-123" {
		t.Errorf("request id = %q, want the caller's", got)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestServer_HTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	srv.Close() // waits for the handler to finish

	if len(hooks.statuses) != 1 || hooks.statuses[0] != http.StatusOK {
		t.Errorf("hook statuses = %v, want [200]", hooks.statuses)
	}
}
