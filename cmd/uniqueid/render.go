package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uniqueid/internal/config"
	"github.com/vango-dev/uniqueid/pkg/mount"
	"github.com/vango-dev/uniqueid/pkg/render"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		items     int
		passes    int
		versionAt int
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo tree and print HTML",
		Long: `Render the demo tree one or more times and print the HTML of
every pass.

Each pass re-renders the same mounted tree, so generated IDs keep
counting up. With --version-at the Provider version changes before
that pass and IDs start again at 1.

Examples:
  uniqueid render
  uniqueid render --items=3 --passes=2
  uniqueid render --passes=3 --version-at=3 --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("items") {
				g.cfg.Demo.Items = items
			}
			if cmd.Flags().Changed("pretty") {
				g.cfg.Render.Pretty = pretty
			}
			if err := g.cfg.Validate(); err != nil {
				return err
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), g, passes, versionAt)
		},
	}

	cmd.Flags().IntVarP(&items, "items", "n", config.DefaultItems, "Number of connected items (default from config)")
	cmd.Flags().IntVarP(&passes, "passes", "p", 1, "Number of render passes")
	cmd.Flags().IntVar(&versionAt, "version-at", 0, "Change the Provider version before this pass (0 disables)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print HTML (default from config)")

	return cmd
}

func runRender(ctx context.Context, w io.Writer, g *globals, passes, versionAt int) error {
	if passes < 1 {
		return fmt.Errorf("passes must be at least 1, got %d", passes)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := g.cfg
	root := mount.New(nil,
		mount.WithLogger(g.logger),
		mount.WithTracer(tracerFor(cfg)),
	)
	defer root.Dispose()

	r := render.NewRenderer(render.RendererConfig{
		Pretty: cfg.Render.Pretty,
		Indent: cfg.Render.Indent,
	})

	generation := 0
	for i := 1; i <= passes; i++ {
		if i == versionAt {
			generation++
		}
		tree, err := root.Update(ctx, demoTree(cfg.Demo.Items, demoVersion(cfg.Demo.Version, generation), nil))
		if err != nil {
			return fmt.Errorf("pass %d: %w", i, err)
		}

		fmt.Fprintf(w, "<!-- pass %d -->\n", i)
		if err := r.RenderToWriter(w, tree); err != nil {
			return err
		}
		if !cfg.Render.Pretty {
			fmt.Fprintln(w)
		}
	}
	return nil
}
