package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/wire"
)

// parseCommand creates the parse command, which prints the document tree.
func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [file.uxl|-]",
		Short: "Print the parsed document tree as JSON",
		Long: `Print the parsed document tree as JSON.

The output lists every page with its nodes, resolved table columns and the
deduplicated navigation edges. Node ids are assigned depth-first in document
order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (c *CLI) runParse(ctx context.Context, input, output string) error {
	opts, err := c.sourceOptions(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := wire.WriteDocument(doc, out); err != nil {
		return err
	}
	if output != "" {
		printSuccess("Parsed %s", opts.SourceName)
		printFile(output)
		printStats(len(doc.Pages), doc.NodeCount(), len(doc.Edges), false)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
