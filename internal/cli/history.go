package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// historyCommand creates the history command for browsing stored layouts.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previously computed layouts",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent layouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				recs, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No layouts recorded yet")
					return nil
				}
				for _, r := range recs {
					printKeyValue(shortID(r.ID), fmt.Sprintf("%s  %dx%d  %d placed, %d omitted",
						r.CreatedAt.Local().Format("2006-01-02 15:04"),
						r.Config.Width, r.Config.Height, r.Stats.Placed, r.Stats.Omitted))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "maximum number of layouts to list")

	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var (
		output  string
		formats string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored layout, or render it with -f",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateLayoutID(id); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(st store.Store) error {
				rec, err := st.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("format") {
					printRecord(rec)
					return nil
				}
				return c.renderRecord(rec, parseFormats(formats), output)
			})
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "render the stored layout: svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")

	return cmd
}

// withStore opens the history store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return errors.New(errors.ErrCodeUnavailable, "history is disabled (store driver %q)", c.Config.Store.Driver)
	}
	defer st.Close()
	return fn(st)
}

func printRecord(rec *store.Record) {
	printKeyValue("ID", rec.ID)
	printKeyValue("Created", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue("Canvas", fmt.Sprintf("%dx%d", rec.Config.Width, rec.Config.Height))
	printKeyValue("Font", rec.Config.FontFamily+" "+rec.Config.FontWeight)
	printKeyValue("Spiral", rec.Config.Spiral.String())
	printKeyValue("Order", rec.Order)
	printKeyValue("Seed", strconv.FormatUint(rec.Seed, 10))
	printKeyValue("Measurer", rec.Measurer)
	printKeyValue("Words", fmt.Sprintf("%d in, %d placed, %d omitted", len(rec.Labels), rec.Stats.Placed, rec.Stats.Omitted))
}

// renderRecord re-renders a stored layout without recomputing placements.
func (c *CLI) renderRecord(rec *store.Record, formats []string, output string) error {
	opts := c.Config.ToPipelineOptions()
	opts.Formats = formats
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	layout := render.NewLayout(rec.Config, rec.Words)
	artifacts, err := pipeline.RenderFromLayout(layout, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     rec.ID + ".json",
		output:    output,
	})
	if err != nil {
		return err
	}
	printSuccess("Rendered layout %s", rec.ID)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// shortID abbreviates a UUID to its first group.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
