package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/wordio"
)

// rotationStep is the change in rotation range per keypress.
const rotationStep = math.Pi / 12

var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand creates the interactive terminal preview command.
func (c *CLI) previewCommand() *cobra.Command {
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "preview [words.json]",
		Short: "Preview a layout interactively in the terminal",
		Long: `Preview a layout interactively in the terminal.

Each word is drawn as its shaded bounding box. The layout is recomputed as
you change parameters:

  s      toggle archimedean / rectangular spiral
  o      toggle input / weight placement order
  + / -  widen or narrow the rotation range
  r      pick a new seed
  q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.apply(cmd.Flags(), c.Config.ToPipelineOptions())
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	flags.addLayoutFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options) error {
	labels, err := wordio.ReadLabelsFile(input)
	if err != nil {
		return fmt.Errorf("load words %s: %w", input, err)
	}
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	m := NewPreviewModel(labels, opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if pm, ok := final.(PreviewModel); ok && pm.Err != nil {
		return pm.Err
	}
	return nil
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

// PreviewModel is the bubbletea model for the interactive preview.
type PreviewModel struct {
	Labels  []cloud.Label
	Options pipeline.Options
	Layout  render.Layout
	Stats   cloud.Stats
	Err     error
	Cols    int
	Rows    int
}

// NewPreviewModel creates a preview model and computes the first layout.
func NewPreviewModel(labels []cloud.Label, opts pipeline.Options) PreviewModel {
	m := PreviewModel{
		Labels:  labels,
		Options: opts,
		Cols:    80,
		Rows:    24,
	}
	m.relayout()
	return m
}

func (m *PreviewModel) relayout() {
	opts := m.Options.Clone()
	m.Layout, m.Stats, m.Err = pipeline.GenerateLayout(m.Labels, opts)
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			if m.Options.Spiral == cloud.SpiralRectangular {
				m.Options.Spiral = cloud.SpiralArchimedean
			} else {
				m.Options.Spiral = cloud.SpiralRectangular
			}
		case "o":
			if m.Options.Order == cloud.OrderNameWeight {
				m.Options.Order = cloud.OrderNameInput
			} else {
				m.Options.Order = cloud.OrderNameWeight
			}
		case "+", "=":
			m.Options.RotationRange = math.Min(m.Options.RotationRange+rotationStep, math.Pi)
		case "-", "_":
			m.Options.RotationRange = math.Max(m.Options.RotationRange-rotationStep, 0)
		case "r":
			m.Options.Seed = m.Options.Seed*6364136223846793005 + 1442695040888963407
			if m.Options.Seed == 0 {
				m.Options.Seed = cloud.DefaultSeed
			}
		default:
			return m, nil
		}
		m.relayout()
	case tea.WindowSizeMsg:
		m.Cols = max(msg.Width, 10)
		m.Rows = max(msg.Height-3, 5)
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Word cloud preview"))
	b.WriteString("  ")
	b.WriteString(previewStatusStyle.Render("s spiral  o order  +/- rotation  r reseed  q quit"))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(previewErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(render.RenderTerminal(m.Layout, m.Options.Style(), m.Cols, m.Rows))
	b.WriteString("\n")
	b.WriteString(previewStatusStyle.Render(m.status()))
	return b.String()
}

// status summarizes the current parameters and placement counts.
func (m PreviewModel) status() string {
	return fmt.Sprintf("spiral=%s order=%s rotation=%.0f° seed=%d · %d placed · %d omitted",
		m.Options.Spiral, m.Options.Order, m.Options.RotationRange*180/math.Pi,
		m.Options.Seed, m.Stats.Placed, m.Stats.Omitted)
}
