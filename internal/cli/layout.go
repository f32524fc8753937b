package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/pipeline"
	"github.com/matzehuels/uxl/pkg/wire"
)

// layoutCommand creates the layout command for computing page layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [file.uxl|-]",
		Short: "Compute page layouts as JSON",
		Long: `Compute page layouts as JSON.

The layout command positions every box of the selected page (or of all pages)
on the document canvas. The output holds one layout, or an array when several
pages were laid out, and can be drawn later with 'render'. A summary table is
printed to stderr.

Results are cached for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	flags.register(cmd)

	return cmd
}

// layoutFlags are the page selection and canvas flags shared by layout,
// render and inspect.
type layoutFlags struct {
	page      string
	width     int
	height    int
	scrollbar float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.page, "page", "p", "", "page id or #n key (default: all pages)")
	cmd.Flags().IntVar(&f.width, "width", 0, "canvas width override in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "canvas height override in pixels")
	cmd.Flags().Float64Var(&f.scrollbar, "scrollbar", -1, "scrollbar thickness reserved on scrolling axes (default from config)")
}

func (f layoutFlags) apply(opts *pipeline.Options) {
	opts.Page = f.page
	opts.Width = f.width
	opts.Height = f.height
	if f.scrollbar >= 0 {
		opts.Scrollbar = f.scrollbar
	}
}

func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags, output string, noCache, refresh bool) error {
	opts, err := c.sourceOptions(input)
	if err != nil {
		return err
	}
	flags.apply(&opts)
	opts.VizType = pipeline.VizTypeWireframe
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Refresh = refresh

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, layoutTable(result.Layouts))
	if output != "" {
		printSuccess("Layout complete")
		printFile(output)
		printStats(result.Stats.PageCount, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
		printNewline()
		printNextStep("Render", appName+" render "+input)
	}
	return nil
}

// layoutTable summarizes layouts as a bordered table.
func layoutTable(layouts []wire.Layout) string {
	rows := make([][]string, 0, len(layouts))
	for _, l := range layouts {
		rows = append(rows, []string{
			l.Page,
			l.Title,
			l.Canvas,
			fmt.Sprintf("%gx%g", l.ContentW, l.ContentH),
			l.Overflow,
			fmt.Sprint(l.Passes),
			fmt.Sprint(len(l.Boxes)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Title", "Canvas", "Content", "Overflow", "Passes", "Boxes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
