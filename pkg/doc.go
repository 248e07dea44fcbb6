// Package pkg provides the core libraries for rtree.
//
// # Overview
//
// rtree stores rooted trees keyed by node id and renders them as box-drawing
// text reports. Wide nodes can be truncated and a report can be centered on a
// single node. The pkg directory is organized into three areas:
//
//  1. [rtree] and [report] - The tree store and the report renderer
//  2. [io] and [render/nodelink] - Loaders and diagram export
//  3. [pipeline], [cache], [observability] - Orchestration used by the CLI and server
//
// # Architecture
//
// The typical data flow:
//
//	Node list / path list / directory
//	         ↓
//	    [io] package (decode and link nodes)
//	         ↓
//	    [rtree] package (rooted tree store)
//	         ↓
//	    [report] or [render/nodelink] package
//	         ↓
//	    Text report, DOT or SVG
//
// # Quick Start
//
// Build a tree and print its report:
//
//	t := rtree.NewBasic[string]()
//	_ = t.AddRoot(rtree.NewNode("/"))
//	_ = t.AddChild("/", rtree.NewNode("/home"))
//	_ = t.AddChild("/", rtree.NewNode("/etc"))
//
//	fmt.Println(report.String(t))
//
// Center the report on one node and show at most five children per node:
//
//	out := report.Report(t, report.Config[string]{
//	    MaxChildren: 5,
//	    Select:      &report.Selection[string]{ID: "/home", Radius: 4},
//	})
//
// # Main Packages
//
// [rtree] - Generic rooted tree store over any node type implementing
// [rtree.Node]. Supports sub-tree extraction, cloning, moving and structural
// equality.
//
// [report] - Connector glyphs, truncation and windowed selection.
//
// [io] - JSON and YAML node lists, newline-separated path lists and
// directory walks.
//
// [render/nodelink] - Graphviz DOT export and SVG rendering.
//
// [pipeline] - Load and render with caching, shared by the CLI and the HTTP
// server so both produce identical output.
//
// [cache] - File, Redis and no-op caches for rendered output.
//
// [errors] - Error codes mapped to exit messages and HTTP statuses.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/rtree/...              # Specific package
//	go test -run Example                 # Examples only
//
// [rtree]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/rtree
// [rtree.Node]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/rtree#Node
// [report]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/report
// [io]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/rtree/pkg/errors
package pkg
