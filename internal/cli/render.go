package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/wordio"
)

// renderCommand creates the render command for going from words to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		noHistory bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "render [words.json]",
		Short: "Place words and render SVG, PNG, PDF or JSON",
		Long: `Place words and render the result.

Runs the full pipeline: the word list is laid out (or taken from the cache),
recorded in the layout history and rendered to every requested format.

With a single format, -o names the output file. With several, -o is a base
path and each format gets its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.apply(cmd.Flags(), c.Config.ToPipelineOptions())
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache, noHistory)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the layout in history")

	flags.addLayoutFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache, noHistory bool) error {
	labels, err := wordio.ReadLabelsFile(input)
	if err != nil {
		return fmt.Errorf("load words %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache, !noHistory)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering word cloud...")
	spinner.Start()
	opts.Progress = spinner.Progress()

	result, err := runner.Execute(ctx, labels, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %d word(s)", result.Stats.Placement.Placed)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Placement.Placed, result.Stats.Placement.Omitted, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if result.ID != "" {
		printDetail("History ID: %s", result.ID)
	}
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each format in order and returns the paths written.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s output produced", format)
		}
		path := outputPath(p.output, p.input, format, len(p.formats))
		out, err := openOutput(path)
		if err != nil {
			return paths, fmt.Errorf("create %s: %w", path, err)
		}
		_, werr := out.Write(data)
		cerr := out.Close()
		if werr != nil {
			return paths, fmt.Errorf("write %s: %w", path, werr)
		}
		if cerr != nil {
			return paths, fmt.Errorf("close %s: %w", path, cerr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath picks the file for one format. A single format writes to
// output as given; several formats share a base path. JSON gets a
// ".layout.json" suffix so it never overwrites the input word list.
func outputPath(output, input, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	if format == string(render.FormatJSON) {
		return basePath(output, input) + ".layout.json"
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "wordcloud"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
