// Package cli provides the brainview command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "brainview",
	Short: "Explore brain activation maps of music analyses",
	Long: `brainview shows the brain activation produced by a music emotion
analysis. Browse anatomical slices along the axial, sagittal and coronal
planes, spin the volumetric activation field, and look up what each
highlighted region does.

Run 'brainview view <analysis>' to open the interactive viewer.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by 'brainview version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command context, or Background when the
// command runs without one (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
