package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/pipeline"
)

// renderFlags hold the drawing flags shared by render and map.
type renderFlags struct {
	formats  string
	output   string
	style    string
	seed     uint64
	links    bool
	pngScale float64
	noCache  bool
	refresh  bool
}

func (f *renderFlags) register(cmd *cobra.Command, formatHelp string) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", formatHelp)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple (default), sketch")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for the sketch style")
	cmd.Flags().BoolVar(&f.links, "links", false, "link GOTO buttons to #page-<key> anchors (svg)")
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", pipeline.DefaultPNGScale, "image pixels per layout pixel (png)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

func (f renderFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(f.formats)
	opts.Style = f.style
	opts.Seed = f.seed
	opts.Links = f.links
	opts.PNGScale = f.pngScale
	opts.Refresh = f.refresh
}

// renderCommand creates the render command for drawing page wireframes.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		layout layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [file.uxl|-]",
		Short: "Draw page wireframes",
		Long: `Draw page wireframes.

The render command lays out the selected page and draws its boxes. SVG and PNG
show one page (the first one unless --page is given); PDF gets one sheet per
page. JSON writes the layout itself.

Results are cached for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.sourceOptions(args[0])
			if err != nil {
				return err
			}
			layout.apply(&opts)
			flags.apply(&opts)
			opts.VizType = pipeline.VizTypeWireframe
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd, "output format(s): svg (default), png, pdf, json (comma-separated)")
	layout.register(cmd)

	return cmd
}

// runRender executes the pipeline for opts and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, renderMessage(opts))
	spin.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	if spin.Cancelled() {
		spin.Stop()
		return ctx.Err()
	}

	spin.Update(fmt.Sprintf("Writing %d artifact(s)", len(result.Artifacts)))
	err = writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	printStats(result.Stats.PageCount, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact to <base>.<format>. A single format
// with an explicit output path is written to that path unchanged.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p)
	formats := make([]string, 0, len(paths))
	for format := range paths {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	printSuccess("Rendered %d file(s)", len(formats))
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s output", format)
		}
		if err := os.WriteFile(paths[format], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
		printFile(paths[format])
	}
	return nil
}

// artifactPaths maps each requested format to its output path.
func artifactPaths(p artifactWriteParams) map[string]string {
	paths := make(map[string]string, len(p.formats))
	if len(p.formats) == 1 && p.output != "" {
		paths[p.formats[0]] = p.output
		return paths
	}
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		paths[format] = base + "." + format
	}
	return paths
}
