package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/pipeline"
)

// mapCommand creates the map command for drawing the navigation map.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		flags    renderFlags
		graphviz bool
		detailed bool
		gaps     struct{ column, row, scale float64 }
	)

	cmd := &cobra.Command{
		Use:   "map [file.uxl|-]",
		Short: "Draw the navigation map between pages",
		Long: `Draw the navigation map between pages.

Pages are placed as thumbnails in columns by their GOTO distance from the
first page, with arrows for every navigation edge. A pair of opposite edges is
drawn as one double-headed arrow.

With --graphviz (or --format dot) the navigation graph is handed to Graphviz
instead, which supports svg, png and dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.sourceOptions(args[0])
			if err != nil {
				return err
			}
			flags.apply(&opts)
			opts.VizType = mapVizType(opts.Formats, graphviz)
			opts.Detailed = detailed
			if gaps.column > 0 {
				opts.ColumnGap = gaps.column
			}
			if gaps.row > 0 {
				opts.RowGap = gaps.row
			}
			if gaps.scale > 0 {
				opts.MapScale = gaps.scale
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd, "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&graphviz, "graphviz", false, "draw the navigation graph with Graphviz")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show page keys and node counts (graphviz)")
	cmd.Flags().Float64Var(&gaps.column, "column-gap", 0, "horizontal gap between columns (default from config)")
	cmd.Flags().Float64Var(&gaps.row, "row-gap", 0, "vertical gap between pages in a column (default from config)")
	cmd.Flags().Float64Var(&gaps.scale, "scale", 0, "thumbnail size relative to the canvas (default from config)")

	return cmd
}

// mapVizType picks the Graphviz renderer when asked for or when DOT output is
// requested.
func mapVizType(formats []string, graphviz bool) string {
	if graphviz || slices.Contains(formats, pipeline.FormatDOT) {
		return pipeline.VizTypeNodelink
	}
	return pipeline.VizTypeMap
}
