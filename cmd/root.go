package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/output"
	"github.com/mj1618/ifwm/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ifwm",
	Short: "A tabbed tiling window manager for X11",
	Long: `ifwm manages X11 windows inside containers. Each container shows one
client at a time and lists the others as tabs in its title strip. Containers
are created by splitting a screen's root container.

Run without a subcommand to start managing the display.`,
	SilenceUsage: true,
	RunE:         runManager,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default $IFWM_CONFIG or $XDG_CONFIG_HOME/ifwm/config.yaml)")
	rootCmd.PersistentFlags().String("display", "", "X display to manage (default $DISPLAY)")
	rootCmd.PersistentFlags().String("state-file", "", "Layout snapshot written by the manager")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")

	rootCmd.Flags().String("log-file", "", "Write JSON logs to this file instead of stderr")
	rootCmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.Flags().String("terminal", "", "Command run by spawn bindings without their own command")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
