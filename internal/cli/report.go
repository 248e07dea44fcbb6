package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rtree/pkg/pipeline"
)

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		flags   reportFlags
		walk    walkOpts
		output  string
		noCache bool
		refresh bool
		noColor bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "report [file|dir|-]",
		Short: "Print a tree as a box-drawing report",
		Long: `Print a tree as a box-drawing report.

The input is a JSON or YAML node list, a newline-separated list of paths,
or a directory. With no argument or "-", the input is read from stdin.

Use --max-children to truncate wide nodes and --select with --radius to
print only the neighbourhood of one node. Results are cached locally.`,
		Example: `  rtree report tree.json
  find . -name '*.go' | rtree report -f paths -n 5
  rtree report tree.yaml --select src/main.go --radius 4
  rtree report tree.json --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd.Flags(), c.Config.Report)
			arg := stdinArg
			if len(args) == 1 {
				arg = args[0]
			}

			opts := flags.options()
			opts.Refresh = refresh
			if output == "" {
				opts.Highlight = highlighter(cmd.OutOrStdout(), noColor)
			}

			run := func() error {
				return c.runReport(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), arg, walk, opts, output, noCache)
			}
			if !watch {
				return run()
			}
			if arg == stdinArg {
				return fmt.Errorf("--watch needs a file or directory argument")
			}
			return c.watch(cmd.Context(), arg, walk, run)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached reports")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "never highlight the selected node")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the input changes")
	cmd.Flags().IntVar(&walk.maxDepth, "depth", -1, "directory depth limit, -1 for unlimited")
	cmd.Flags().BoolVar(&walk.hidden, "hidden", false, "include hidden directory entries")

	return cmd
}

// runReport loads the input, renders it and writes the result.
func (c *CLI) runReport(ctx context.Context, stdin io.Reader, stdout io.Writer, arg string, walk walkOpts, opts pipeline.Options, output string, noCache bool) error {
	prog := newProgress(loggerFromContext(ctx))

	src, err := loadSource(stdin, arg, walk)
	if err != nil {
		return err
	}

	opts.Output = pipeline.OutputReport
	result, err := c.render(ctx, src, opts, noCache)
	if err != nil {
		return fmt.Errorf("report %s: %w", src, err)
	}

	text := bytes.TrimPrefix(result.Output, []byte("\n"))
	if output != "" {
		if err := os.WriteFile(output, text, 0644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printStats(result.Stats.NodeCount, result.CacheHit)
		printFile(output)
	} else if _, err := stdout.Write(text); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s", src))
	return nil
}

// render produces the artifact for src. Directories render in-process;
// documents go through the cached pipeline.
func (c *CLI) render(ctx context.Context, src *source, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	if src.tree != nil {
		opts.Logger = c.Logger
		out, err := pipeline.Render(ctx, src.tree, opts)
		if err != nil {
			return nil, err
		}
		return &pipeline.Result{
			Tree:   src.tree,
			Output: out,
			Stats:  pipeline.Stats{NodeCount: src.tree.Len()},
		}, nil
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = src.data
	opts.Source = src.name
	return runner.Execute(ctx, opts)
}

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// watch runs fn once, then again whenever path changes, until ctx is done.
// Directory inputs are watched at every level the walk options include.
// Render failures while watching are logged rather than returned.
func (c *CLI) watch(ctx context.Context, path string, walk walkOpts, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		// Editors replace files on save, so watch the parent.
		dir = filepath.Dir(target)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	} else if err := addWatches(watcher, target, target, walk); err != nil {
		return err
	}
	c.Logger.Info("watching for changes", "path", target)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target, dir) {
				continue
			}
			if dir == target && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatches(watcher, target, event.Name, walk); err != nil {
						c.Logger.Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)

		case <-pending:
			pending = nil
			c.Logger.Debug("input changed, re-rendering", "path", target)
			if err := fn(); err != nil {
				c.Logger.Error("render failed", "error", err)
			}
		}
	}
}

// addWatches adds start and every directory below it that a walk of root
// with the same options would enter.
func addWatches(watcher *fsnotify.Watcher, root, start string, walk walkOpts) error {
	return filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root {
			if !walk.hidden && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			// Entries of a directory at the depth limit are not rendered.
			if walk.maxDepth >= 0 && dirDepth(root, p) >= walk.maxDepth {
				return filepath.SkipDir
			}
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// dirDepth is the number of path elements of p below root.
func dirDepth(root, p string) int {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// relevant reports whether event touches the watched input. For a
// directory input every entry counts.
func relevant(event fsnotify.Event, target, dir string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if dir == target {
		return true
	}
	return filepath.Clean(event.Name) == target
}
