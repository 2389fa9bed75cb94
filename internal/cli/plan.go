package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/pack"
	"github.com/matzehuels/qrlabels/pkg/pipeline"
)

// planCommand previews the layout of a run without generating codes.
func (c *CLI) planCommand() *cobra.Command {
	f := newLabelFlags()

	cmd := &cobra.Command{
		Use:   "plan [spec]",
		Short: "Preview the label grid and page count",
		Long: `Preview the label grid and page count for a run.

plan accepts the same spec argument and flags as the root command but
generates no codes and writes no files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, args)
			if err != nil {
				return err
			}
			return runPlan(opts)
		},
	}

	f.bind(cmd)
	return cmd
}

func runPlan(opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	plan, err := layout.NewPlan(opts.Page, opts.Scale, opts.CutLines)
	if err != nil {
		return err
	}

	packOpts := opts.PackOptions()
	repeat := pack.EffectiveRepeat(opts.Repeat, plan.Columns, packOpts)
	pages := pack.PageCount(plan.Columns, plan.Rows, opts.Count, opts.Repeat, packOpts)

	printKeyValue("Page", fmt.Sprintf("%.2fx%.2fin, %.2fin margin, %d dpi",
		opts.Page.Size.Width, opts.Page.Size.Height, opts.Page.Margin, opts.Page.DPI))
	printKeyValue("Symbol", fmt.Sprintf("%.2fin (%dpx)", plan.Scale, plan.Symbol))
	printKeyValue("Grid", fmt.Sprintf("%d x %d (%d per page)", plan.Columns, plan.Rows, plan.Capacity()))
	printKeyValue("Labels", fmt.Sprintf("%d codes x %d = %d", opts.Count, repeat, opts.Count*repeat))
	printKeyValue("Pages", strconv.Itoa(pages))
	printKeyValue("Output", opts.BaseName()+".pdf")
	if repeat != opts.Repeat {
		printDetail("repeat rounded up from %d to fill rows", opts.Repeat)
	}
	return nil
}

// pagesCommand lists the page presets and their capacity at a scale.
func (c *CLI) pagesCommand() *cobra.Command {
	var (
		scale    float64
		cutLines bool
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List page sizes and how many labels fit on each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderPagesTable(scale, cutLines)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&scale, "scale", "s", pipeline.DefaultScale, "symbol size in inches")
	cmd.Flags().BoolVar(&cutLines, "include-cut-lines", false, "account for cut lines")
	return cmd
}

func renderPagesTable(scale float64, cutLines bool) (string, error) {
	var rows [][]string
	for _, name := range layout.PresetNames() {
		page, err := layout.Preset(name)
		if err != nil {
			return "", err
		}
		size := fmt.Sprintf("%.2f x %.2f in", page.Size.Width, page.Size.Height)
		plan, err := layout.NewPlan(page, scale, cutLines)
		if err != nil {
			rows = append(rows, []string{name, size, "-", "0"})
			continue
		}
		rows = append(rows, []string{
			name,
			size,
			fmt.Sprintf("%d x %d", plan.Columns, plan.Rows),
			strconv.Itoa(plan.Capacity()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Size", "Grid", "Labels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
	return t.String(), nil
}
