// Package output renders command results as YAML or JSON.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/ifwm/internal/config"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes. Tests replace it.
var Stdout io.Writer = os.Stdout

// ParseFormat validates a --format value. Empty selects YAML.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// Binding is one row of the `bindings` command.
type Binding struct {
	Keys    string `yaml:"keys"              json:"keys"`
	Action  string `yaml:"action"            json:"action"`
	Context string `yaml:"context"           json:"context"`
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
}

// BindingsResult is the top-level output of the `bindings` command.
type BindingsResult struct {
	Config   string    `yaml:"config,omitempty" json:"config,omitempty"`
	Bindings []Binding `yaml:"bindings"         json:"bindings"`
}

// NewBindingsResult lists cfg's bindings. Spawn bindings without a command
// show the terminal they fall back to.
func NewBindingsResult(path string, cfg config.Config) BindingsResult {
	out := BindingsResult{Config: path, Bindings: make([]Binding, 0, len(cfg.Bindings))}
	for _, b := range cfg.Bindings {
		row := Binding{Keys: b.Keys, Action: b.Action, Context: b.BindingContext(), Command: b.Command}
		if b.Action == config.ActionSpawn {
			row.Command = cfg.SpawnCommand(b)
		}
		out.Bindings = append(out.Bindings, row)
	}
	return out
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}
