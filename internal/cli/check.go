package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/nav"
)

// checkCommand creates the check command for validating a document.
func (c *CLI) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file.uxl|-]",
		Short: "Parse and validate a UXL document",
		Long: `Parse and validate a UXL document.

The check command runs the parser and validator and prints page, node and
navigation edge counts. Errors are reported with their source position and a
caret under the offending column. Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0])
		},
	}
	return cmd
}

func (c *CLI) runCheck(ctx context.Context, input string) error {
	opts, err := c.sourceOptions(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	doc, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}
	g := nav.FromEdges(doc.Edges)
	prog.done("Checked "+opts.SourceName, "pages", len(doc.Pages), "nodes", doc.NodeCount(), "edges", g.Len())

	printSuccess("%s is valid", opts.SourceName)
	printStats(len(doc.Pages), doc.NodeCount(), g.Len(), false)
	for _, p := range doc.Pages {
		printDetail("%-12s %s", p.Key(), fmt.Sprintf("%q -> %v", p.Title(), g.Successors(p.Key())))
	}
	return nil
}
