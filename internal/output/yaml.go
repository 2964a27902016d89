package output

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PrintYAML serializes v to Stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
