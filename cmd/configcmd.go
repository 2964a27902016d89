package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and print the effective configuration",
	Long:  "Load the configuration file over the defaults, apply flag overrides, validate it and print the result as YAML.",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return output.PrintYAML(cfg)
}
