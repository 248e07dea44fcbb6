// Package pipeline provides the load → render pipeline shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: decode a node list, path list or directory into a tree
//  2. Render: produce a text report, a Graphviz DOT document or an SVG
//
// [Runner] wraps both stages with a [cache.Cache] keyed by the hash of the
// input bytes and the options that affect the output, so repeated requests
// for the same document skip both stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:       data,
//	    Format:      "json",
//	    MaxChildren: 10,
//	    Select:      "src/main.go",
//	    Radius:      4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rtree/pkg/cache"
	"github.com/matzehuels/rtree/pkg/errors"
	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/report"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is used when neither Format nor Source name a format.
	DefaultFormat = string(pkgio.FormatJSON)

	// DefaultOutput is the default artifact.
	DefaultOutput = OutputReport

	// DefaultWrap is the default elided end for wide child lists.
	DefaultWrap = "bottom"

	// MaxInputSize bounds the input document accepted by the pipeline.
	MaxInputSize = 16 << 20
)

// Output constants.
const (
	OutputReport = "report"
	OutputDOT    = "dot"
	OutputSVG    = "svg"
)

// ValidOutputs is the set of supported outputs.
var ValidOutputs = map[string]bool{
	OutputReport: true,
	OutputDOT:    true,
	OutputSVG:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Input  []byte `json:"-"`
	Format string `json:"format,omitempty"` // json, yaml or paths
	Source string `json:"-"`                // file name, for format detection and logs

	// Report options
	MaxChildren int    `json:"max_children,omitempty"` // 0 = unlimited
	Wrap        string `json:"wrap,omitempty"`         // top or bottom
	Select      string `json:"select,omitempty"`       // node id to center on
	Radius      int    `json:"radius,omitempty"`
	Labels      bool   `json:"labels,omitempty"` // print node labels instead of ids

	// Output options
	Output   string `json:"output,omitempty"` // report, dot or svg
	Detailed bool   `json:"detailed,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Highlight decorates the selected node's label in text reports.
	Highlight func(label string) string `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed tree. It is nil when the output came from cache.
	Tree *pkgio.Tree

	// InputHash is the content hash of the input document.
	InputHash string

	// Output is the rendered artifact.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ParseTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateOutput checks that an output is valid.
func ValidateOutput(output string) error {
	if !ValidOutputs[output] {
		return errors.New(errors.ErrCodeUnsupported, "invalid output: %q (must be one of: report, dot, svg)", output)
	}
	return nil
}

// ValidateWrap checks that a wrap mode is valid.
func ValidateWrap(wrap string) error {
	if _, err := report.ParseChildWrap(wrap); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid wrap")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the input and resolves its format.
func (o *Options) ValidateForParse() error {
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if len(o.Input) > MaxInputSize {
		return errors.New(errors.ErrCodeInvalidInput, "input exceeds %d bytes", MaxInputSize)
	}

	switch {
	case o.Format != "":
		f, err := pkgio.ParseFormat(o.Format)
		if err != nil {
			return err
		}
		o.Format = string(f)
	case o.Source != "":
		o.Format = string(pkgio.DetectFormat(o.Source))
	default:
		o.Format = DefaultFormat
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Wrap == "" {
		o.Wrap = DefaultWrap
	}
	if o.MaxChildren < 0 {
		o.MaxChildren = 0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateOutput(o.Output); err != nil {
		return err
	}
	if err := ValidateWrap(o.Wrap); err != nil {
		return err
	}
	if o.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "radius must be >= 0, got %d", o.Radius)
	}
	if o.Select != "" {
		if err := errors.ValidateNodeID(o.Select); err != nil {
			return err
		}
	}
	return nil
}

// IsReport returns true if the output is a text report.
func (o *Options) IsReport() bool {
	return o.Output == "" || o.Output == OutputReport
}

// KeyType names the cache key family for the output.
func (o *Options) KeyType() string {
	if o.IsReport() {
		return "report"
	}
	return "dot"
}

// ReportKeyOpts returns cache key options for text reports.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Format:      o.Format,
		MaxChildren: o.MaxChildren,
		Wrap:        o.Wrap,
		Select:      o.Select,
		Radius:      o.Radius,
		Labels:      o.Labels,
		Styled:      o.Highlight != nil,
	}
}

// DOTKeyOpts returns cache key options for diagrams.
func (o *Options) DOTKeyOpts() cache.DOTKeyOpts {
	return cache.DOTKeyOpts{
		Format:   o.Format,
		Output:   o.Output,
		Detailed: o.Detailed,
		Select:   o.Select,
		Radius:   o.Radius,
		Labels:   o.Labels,
	}
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	if o.Select != "" {
		return fmt.Sprintf("%s→%s select=%s radius=%d", o.Format, o.Output, o.Select, o.Radius)
	}
	return fmt.Sprintf("%s→%s", o.Format, o.Output)
}
