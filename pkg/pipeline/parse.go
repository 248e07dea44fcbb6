package pipeline

import (
	"bytes"
	"context"
	"time"

	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/observability"
)

// Parse decodes opts.Input into a tree using opts.Format.
func Parse(ctx context.Context, opts Options) (*pkgio.Tree, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	hooks := observability.Report()
	hooks.OnLoadStart(ctx, opts.Format)
	start := time.Now()

	t, err := pkgio.Read(bytes.NewReader(opts.Input), pkgio.Format(opts.Format))

	n := 0
	if err == nil {
		n = t.Len()
	}
	hooks.OnLoadComplete(ctx, opts.Format, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return t, nil
}
