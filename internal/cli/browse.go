package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/pipeline"
	"github.com/matzehuels/rtree/pkg/report"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags reportFlags
		walk  walkOpts
	)

	cmd := &cobra.Command{
		Use:   "browse <file|dir>",
		Short: "Walk a tree interactively",
		Long: `Walk a tree interactively.

The screen shows the windowed report centered on the node under the cursor.
Move with the arrow keys, jump to the parent with ←, and change the window
radius, the child limit and the wrap mode while browsing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd.Flags(), c.Config.Report)
			if args[0] == stdinArg {
				return fmt.Errorf("browse reads keys from stdin; pass a file or directory")
			}
			return c.runBrowse(cmd.Context(), args[0], walk, flags)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&walk.maxDepth, "depth", -1, "directory depth limit, -1 for unlimited")
	cmd.Flags().BoolVar(&walk.hidden, "hidden", false, "include hidden directory entries")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, arg string, walk walkOpts, flags reportFlags) error {
	t, err := c.loadTree(ctx, arg, walk, flags.format)
	if err != nil {
		return err
	}
	wrap, err := report.ParseChildWrap(flags.wrap)
	if err != nil {
		return err
	}

	model := NewBrowseModel(t, flags.radius, flags.maxChildren, wrap, flags.labels)
	if flags.selectID != "" && !model.Focus(flags.selectID) {
		return fmt.Errorf("node %q is not reachable from the root", flags.selectID)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// loadTree loads arg into a tree without rendering or caching.
func (c *CLI) loadTree(ctx context.Context, arg string, walk walkOpts, format string) (*pkgio.Tree, error) {
	src, err := loadSource(nil, arg, walk)
	if err != nil {
		return nil, err
	}
	if src.tree != nil {
		return src.tree, nil
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	return runner.Load(ctx, pipeline.Options{
		Input:  src.data,
		Source: src.name,
		Format: format,
	})
}
