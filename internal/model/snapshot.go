package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// stateFileName is the layout snapshot written by a running manager.
const stateFileName = "layout.json"

// DefaultStatePath returns the layout snapshot location for display, under
// $XDG_RUNTIME_DIR when set and the system temp directory otherwise.
func DefaultStatePath(display string) string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ifwm"+sanitizeDisplay(display), stateFileName)
}

func sanitizeDisplay(display string) string {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	if display == "" {
		return ""
	}
	out := make([]rune, 0, len(display)+1)
	out = append(out, '-')
	for _, r := range display {
		switch r {
		case '/', ':', ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// SaveLayout atomically writes a layout snapshot to path.
func SaveLayout(path string, layout Layout) error {
	data, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace layout: %w", err)
	}
	return nil
}

// LoadLayout reads a snapshot written by SaveLayout.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("load layout: %w", err)
	}
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return layout, nil
}
