package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/rtree/pkg/errors"
	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/observability"
	"github.com/matzehuels/rtree/pkg/render/nodelink"
	"github.com/matzehuels/rtree/pkg/report"
)

// Render produces the artifact selected by opts.Output.
func Render(ctx context.Context, t *pkgio.Tree, opts Options) ([]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Report()
	hooks.OnRenderStart(ctx, opts.Output)
	start := time.Now()

	var data []byte
	var err error
	switch opts.Output {
	case OutputReport:
		data = []byte(report.Report(t, ReportConfig(t, opts)))
	case OutputDOT:
		data = []byte(nodelink.ToDOT(t, DOTOptions(t, opts)))
	case OutputSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(t, DOTOptions(t, opts)))
		if err != nil {
			err = errors.Wrap(errors.ErrCodeFormatting, err, "render svg")
		}
	}

	hooks.OnRenderComplete(ctx, opts.Output, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReportConfig translates options into a report configuration for t.
// opts must already be validated.
func ReportConfig(t *pkgio.Tree, opts Options) report.Config[string] {
	wrap, _ := report.ParseChildWrap(opts.Wrap)
	cfg := report.Config[string]{
		MaxChildren: opts.MaxChildren,
		Wrap:        wrap,
		Select:      selection(opts),
	}
	if opts.Labels {
		cfg.Label = LabelFunc(t)
	}
	if opts.Highlight != nil && opts.Select != "" {
		target, highlight := opts.Select, opts.Highlight
		cfg.Style = func(id, label string) string {
			if id == target {
				return highlight(label)
			}
			return label
		}
	}
	return cfg
}

// DOTOptions translates options into diagram options for t.
func DOTOptions(t *pkgio.Tree, opts Options) nodelink.Options[string] {
	o := nodelink.Options[string]{
		Detailed: opts.Detailed,
		Select:   selection(opts),
	}
	if opts.Labels {
		o.Label = LabelFunc(t)
	}
	return o
}

func selection(opts Options) *report.Selection[string] {
	if opts.Select == "" {
		return nil
	}
	return &report.Selection[string]{ID: opts.Select, Radius: opts.Radius}
}

// LabelFunc returns a label function that prints a node's Label, falling
// back to its id for unlabeled or unresolved nodes.
func LabelFunc(t *pkgio.Tree) func(string) string {
	return func(id string) string {
		if n, ok := t.Node(id); ok && n.Label != "" {
			return n.Label
		}
		return id
	}
}
