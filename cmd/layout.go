package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/model"
	"github.com/mj1618/ifwm/internal/output"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the running manager's containers and tabs",
	Long: `Print the last layout snapshot written by a running ifwm: every container
in activation order with its geometry and clients, the focused container first.

Examples:
  ifwm layout
  ifwm layout --focused --format json
  ifwm layout --container 0x400001`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().Bool("focused", false, "Only show the focused container")
	layoutCmd.Flags().String("container", "", "Only show the container with this frame window id (decimal or 0x hex)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := statePath(cfg)
	layout, err := model.LoadLayout(path)
	if err != nil {
		return fmt.Errorf("%w (is ifwm running on this display?)", err)
	}

	focused, _ := cmd.Flags().GetBool("focused")
	container, _ := cmd.Flags().GetString("container")
	layout, err = selectContainers(layout, container, focused)
	if err != nil {
		return err
	}
	return output.Print(layout)
}

// selectContainers narrows layout to one container when asked to.
func selectContainers(layout model.Layout, container string, focused bool) (model.Layout, error) {
	switch {
	case container != "":
		id, err := parseWindowID(container)
		if err != nil {
			return model.Layout{}, err
		}
		only, ok := layout.Only(id)
		if !ok {
			return model.Layout{}, fmt.Errorf("container %s not found", container)
		}
		return only, nil
	case focused:
		only, ok := layout.Only(layout.Focused)
		if !ok {
			return model.Layout{}, fmt.Errorf("no container has focus")
		}
		return only, nil
	default:
		return layout, nil
	}
}
