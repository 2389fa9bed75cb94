// Package cli implements the qrlabels command-line interface.
//
// The root command generates a label sheet. It takes an optional compact
// spec argument ("20x4@2": 20 codes, 4 copies each, 2in symbols) on top
// of flags and an optional TOML config file:
//
//	qrlabels 20x4@2 --grouped --fill --include-cut-lines -n pantry
//
// Subcommands:
//   - plan: preview the grid and page count without generating anything
//   - pages: list the known page sizes and their capacity
//   - completion: generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrlabels/pkg/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	f := newLabelFlags()

	root := &cobra.Command{
		Use:   "qrlabels [spec]",
		Short: "Generate printable sheets of unique QR code labels",
		Long: `qrlabels generates unique short codes, renders each as a QR symbol with the
code printed beneath it and packs the labels onto printable pages.

The optional spec argument has the form COUNT[xREPEAT][@SCALE] and
overrides --count, --repeat and --scale:

  qrlabels 20          20 codes, one label each
  qrlabels 20x4        20 codes, four labels each
  qrlabels 20x4@2      ... with 2in symbols`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, args)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, f.dryRun)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	f.bind(root)
	root.Flags().BoolVar(&f.dryRun, "dry-run", false, "build the document but write nothing")

	root.AddCommand(c.planCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.completionCommand())

	return root
}
