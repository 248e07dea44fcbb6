package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rtree/pkg/pipeline"
)

// dotCommand creates the dot command for Graphviz export.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags    reportFlags
		walk     walkOpts
		output   string
		svg      bool
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "dot [file|dir|-]",
		Short: "Export a tree as a Graphviz diagram",
		Long: `Export a tree as a Graphviz DOT document, or as SVG with --svg.

Child ids missing from the tree and the external parent of a detached
sub-tree are drawn dashed. --select and --radius restrict the diagram to the
same window the report would show, with the selected node highlighted.`,
		Example: `  rtree dot tree.json | dot -Tpng > tree.png
  rtree dot tree.json --svg -o tree.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd.Flags(), c.Config.Report)
			arg := stdinArg
			if len(args) == 1 {
				arg = args[0]
			}
			opts := flags.options()
			opts.Detailed = detailed
			opts.Output = pipeline.OutputDOT
			if svg {
				opts.Output = pipeline.OutputSVG
			}
			return c.runDOT(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), arg, walk, opts, output, noCache)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show ids and child counts in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&walk.maxDepth, "depth", -1, "directory depth limit, -1 for unlimited")
	cmd.Flags().BoolVar(&walk.hidden, "hidden", false, "include hidden directory entries")

	return cmd
}

func (c *CLI) runDOT(ctx context.Context, stdin io.Reader, stdout io.Writer, arg string, walk walkOpts, opts pipeline.Options, output string, noCache bool) error {
	src, err := loadSource(stdin, arg, walk)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.Output))
	spinner.Start()

	result, err := c.render(ctx, src, opts, noCache)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("%s %s: %w", opts.Output, src, err)
	}
	spinner.Stop()

	if output == "" {
		_, err := stdout.Write(result.Output)
		return err
	}
	if err := os.WriteFile(output, result.Output, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printStats(result.Stats.NodeCount, result.CacheHit)
	printFile(output)
	return nil
}
