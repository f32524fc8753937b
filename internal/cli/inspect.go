package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/pipeline"
)

// inspectCommand creates the interactive page browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [file.uxl|-]",
		Short: "Browse pages and follow GOTO links in the terminal",
		Long: `Browse pages and follow GOTO links in the terminal.

Every page is laid out up front. The browser shows the boxes of the current
page and its outgoing links; following a link remembers where you came from so
you can step back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().Lookup("page").Usage = "page to start on (default: first page)"

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, flags layoutFlags) error {
	if input == stdinName {
		return fmt.Errorf("inspect needs a file: standard input is used by the terminal")
	}
	opts, err := c.sourceOptions(input)
	if err != nil {
		return err
	}
	flags.apply(&opts)
	start := opts.Page
	opts.Page = ""
	opts.VizType = pipeline.VizTypeWireframe

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}
	if start != "" {
		if _, err := pipeline.SelectPages(doc, start); err != nil {
			return err
		}
	}
	layouts, err := runner.Layouts(ctx, doc, opts)
	if err != nil {
		return err
	}

	model := NewPageBrowserModel(doc, layouts, start)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
