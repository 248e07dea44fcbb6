package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/rtree/pkg/cache"
	"github.com/matzehuels/rtree/pkg/errors"
)

const sampleJSON = `{"nodes": [
	{"id": "1"},
	{"id": "2", "parent": "1"},
	{"id": "3", "parent": "1"}
]}`

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		output  string
		wantErr bool
	}{
		{"report", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"DOT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateOutput(tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutput(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
		}
	}
}

func TestValidateWrap(t *testing.T) {
	tests := []struct {
		wrap    string
		wantErr bool
	}{
		{"top", false},
		{"bottom", false},
		{"TOP", false},
		{"", false},
		{"middle", true},
	}

	for _, tt := range tests {
		err := ValidateWrap(tt.wrap)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWrap(%q) error = %v, wantErr %v", tt.wrap, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantFormat string
		wantCode   errors.Code
	}{
		{"missing input", Options{}, "", errors.ErrCodeInvalidInput},
		{"explicit format", Options{Input: []byte("x"), Format: "yml"}, "yaml", ""},
		{"detected from source", Options{Input: []byte("x"), Source: "tree.json"}, "json", ""},
		{"unknown extension", Options{Input: []byte("x"), Source: "list.txt"}, "paths", ""},
		{"default", Options{Input: []byte("x")}, DefaultFormat, ""},
		{"bad format", Options{Input: []byte("x"), Format: "xml"}, "", errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForParse()
			if tt.wantCode != "" {
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.opts.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", tt.opts.Format, tt.wantFormat)
			}
			if tt.opts.Logger == nil {
				t.Error("Logger should default to a discard logger")
			}
		})
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if opts.Output != DefaultOutput {
		t.Errorf("Output should be %s, got %s", DefaultOutput, opts.Output)
	}
	if opts.Wrap != DefaultWrap {
		t.Errorf("Wrap should be %s, got %s", DefaultWrap, opts.Wrap)
	}

	opts = Options{MaxChildren: -3}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("negative MaxChildren should be clamped: %v", err)
	}
	if opts.MaxChildren != 0 {
		t.Errorf("MaxChildren = %d, want 0", opts.MaxChildren)
	}

	bad := []Options{
		{Radius: -1},
		{Output: "pdf"},
		{Wrap: "left"},
		{Select: strings.Repeat("x", errors.MaxIDLength+1)},
	}
	for _, o := range bad {
		if err := o.ValidateForRender(); err == nil {
			t.Errorf("%+v should fail validation", o)
		}
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: []byte(sampleJSON)}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	format, output := opts.Format, opts.Output

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Format != format || opts.Output != output {
		t.Error("defaults changed on second call")
	}
}

func TestKeyOpts(t *testing.T) {
	opts := Options{Format: "json", MaxChildren: 4, Wrap: "top", Select: "a", Radius: 2}
	if opts.KeyType() != "report" {
		t.Errorf("KeyType = %s, want report", opts.KeyType())
	}
	rk := opts.ReportKeyOpts()
	if rk.MaxChildren != 4 || rk.Wrap != "top" || rk.Select != "a" || rk.Radius != 2 || rk.Styled {
		t.Errorf("ReportKeyOpts = %+v", rk)
	}

	opts.Highlight = strings.ToUpper
	if !opts.ReportKeyOpts().Styled {
		t.Error("Highlight should mark the key as styled")
	}

	opts.Output = OutputSVG
	if opts.KeyType() != "dot" {
		t.Errorf("KeyType = %s, want dot", opts.KeyType())
	}
	if dk := opts.DOTKeyOpts(); dk.Output != OutputSVG || dk.Select != "a" {
		t.Errorf("DOTKeyOpts = %+v", dk)
	}
}

func TestParse(t *testing.T) {
	tree, err := Parse(context.Background(), Options{Input: []byte(sampleJSON)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}

	_, err = Parse(context.Background(), Options{Input: []byte("{"), Format: "json"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed json: got %v", err)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "report",
			opts: Options{Input: []byte(sampleJSON)},
			want: "\n 1\n ├── 1 ↜ 2\n └── 1 ↜ 3\n",
		},
		{
			name: "truncated",
			opts: Options{Input: []byte(sampleJSON), MaxChildren: 1},
			want: "\n 1\n ├── 1 ↜ 2\n ╎  \n",
		},
		{
			name: "labels",
			opts: Options{Input: []byte("a/b\n"), Format: "paths", Labels: true},
			want: "\n /\n └── / ↜ a\n     └── a ↜ b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(ctx, tt.opts)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			out, err := Render(ctx, tree, tt.opts)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", out, tt.want)
			}
		})
	}
}

func TestRenderHighlight(t *testing.T) {
	ctx := context.Background()
	opts := Options{
		Input:     []byte("a/b\n"),
		Format:    "paths",
		Labels:    true,
		Select:    "/a",
		Radius:    2,
		Highlight: func(s string) string { return "[" + s + "]" },
	}
	tree, err := Parse(ctx, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Render(ctx, tree, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "/ ↜ [a]") {
		t.Errorf("selected node should be highlighted:\n%s", out)
	}
	if strings.Contains(string(out), "[b]") {
		t.Errorf("only the selected node should be highlighted:\n%s", out)
	}
}

func TestRenderDOT(t *testing.T) {
	ctx := context.Background()
	opts := Options{Input: []byte(sampleJSON), Output: OutputDOT}
	tree, err := Parse(ctx, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Render(ctx, tree, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(out), "digraph") {
		t.Errorf("expected DOT output, got:\n%s", out)
	}
}

func TestRunnerCaches(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Input: []byte(sampleJSON)}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}
	if first.Tree == nil || first.Stats.NodeCount != 3 {
		t.Errorf("first run should parse the tree, got %+v", first.Stats)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit")
	}
	if string(second.Output) != string(first.Output) {
		t.Errorf("cached output differs:\n%q\n%q", second.Output, first.Output)
	}
	if second.InputHash != first.InputHash {
		t.Error("input hash should be stable")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	// A different option is a different key.
	other, err := r.Execute(ctx, Options{Input: []byte(sampleJSON), Wrap: "top", MaxChildren: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if other.CacheHit {
		t.Error("different options should miss")
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestRunnerLoad(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	tree, err := r.Load(context.Background(), Options{Input: []byte("x/y\nx/z\n"), Format: "paths"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tree.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tree.Len())
	}
}
