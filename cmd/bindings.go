package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/output"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the configured key bindings",
	Long: `List the key bindings from the configuration file, or the defaults when
there is none. Root bindings are grabbed on every screen; container bindings
apply while a container frame has keyboard focus.`,
	RunE: runBindings,
}

func init() {
	rootCmd.AddCommand(bindingsCmd)
}

func runBindings(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return output.Print(output.NewBindingsResult(path, cfg))
}
