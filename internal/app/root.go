// Package app contains the Cobra command tree for vitalwatch.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vitalwatch/vitalwatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "vitalwatch",
	Short: "Analyze user-perceived web performance captures",
	Long: `vitalwatch turns captured page performance signals into diagnostics.
It groups layout shifts into session windows, breaks interaction latency
into phases, classifies the likely root cause of each regression, and
pairs every finding with a remediation suggestion.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("vitalwatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  analyze   Analyze capture files and report metrics and issues")
		fmt.Println("  track     Analyze a capture, store a run, and compare with the previous one")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable color output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
}

// setupColor disables color when asked to, or when stdout is not a
// terminal.
func setupColor() {
	if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		output.SetNoColor(true)
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
