package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordio"
)

// layoutCommand creates the layout command for computing word placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		noHistory bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "layout [words.json]",
		Short: "Place words and write the placements as JSON",
		Long: `Place words and write the placements as JSON.

The input is a JSON array of {"text", "weight"} objects, with optional
"color" and "rotate" (radians). Use "-" to read from stdin. The output is
an array of placed words with their center, rotation and font size.

Words that do not fit on the canvas are omitted. Results are cached
locally and recorded in the layout history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.apply(cmd.Flags(), c.Config.ToPipelineOptions())
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, noHistory)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <input>.layout.json, "-" for stdout)`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the layout in history")

	// Layout flags
	flags.addLayoutFlags(cmd.Flags())

	return cmd
}

// runLayout loads the word list, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, noHistory bool) error {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(labels)))
	spinner.Start()
	opts.Progress = spinner.Progress()

	layout, stats, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, labels, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	id, err := runner.Save(ctx, labels, layout, stats, opts)
	if err != nil {
		c.Logger.Warn("layout not recorded in history", "error", err)
	}

	outputPath := output
	if outputPath == "" && input != "-" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	toStdout := outputPath == "" || outputPath == "-"

	out, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	defer out.Close()
	if err := wordio.EncodePlaced(out, layout.Words); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if toStdout {
		c.Logger.Info("layout complete", "placed", stats.Placed, "omitted", stats.Omitted, "cached", cacheHit)
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(stats.Placed, stats.Omitted, cacheHit)
	if id != "" {
		printDetail("History ID: %s", id)
	}
	printNewline()
	printNextStep("Render", "wordcloud render "+input)

	return nil
}
