// Package config loads the window manager configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Binding contexts.
const (
	ContextRoot      = "root"
	ContextContainer = "container"
)

// Action names understood by the manager.
const (
	ActionSplitHorizontal = "split-horizontal"
	ActionSplitVertical   = "split-vertical"
	ActionSpawn           = "spawn"
	ActionNextClient      = "next-client"
)

const envConfigPath = "IFWM_CONFIG"

// Config captures runtime configuration for the window manager.
type Config struct {
	Display     string    `yaml:"display"`
	Terminal    string    `yaml:"terminal"`
	Shell       string    `yaml:"shell"`
	BorderWidth int       `yaml:"border_width"`
	MinSplit    int       `yaml:"min_split"`
	TitleClick  string    `yaml:"title_click_button"`
	StateFile   string    `yaml:"state_file"`
	Colors      Colors    `yaml:"colors"`
	Title       Title     `yaml:"title"`
	Log         Log       `yaml:"log"`
	Bindings    []Binding `yaml:"bindings"`
}

// Colors are "#RRGGBB" strings.
type Colors struct {
	Border            string `yaml:"border"`
	Frame             string `yaml:"frame"`
	TitleActive       string `yaml:"title_active"`
	TitleInactive     string `yaml:"title_inactive"`
	TitleText         string `yaml:"title_text"`
	TitleInactiveText string `yaml:"title_inactive_text"`
}

// Title controls title-bar text layout.
type Title struct {
	Padding int `yaml:"padding"`
}

// Log configures the logger.
type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Binding maps a key string to a named action.
type Binding struct {
	Keys    string `yaml:"keys"`
	Action  string `yaml:"action"`
	Command string `yaml:"command,omitempty"`
	Context string `yaml:"context,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Terminal:    "xterm",
		Shell:       "/bin/sh",
		BorderWidth: 1,
		MinSplit:    30,
		TitleClick:  "left",
		Colors: Colors{
			Border:            "#ffff00",
			Frame:             "#000000",
			TitleActive:       "#285577",
			TitleInactive:     "#222222",
			TitleText:         "#ffffff",
			TitleInactiveText: "#888888",
		},
		Title: Title{Padding: 3},
		Log:   Log{Level: "info"},
		Bindings: []Binding{
			{Keys: "alt+j", Action: ActionSplitHorizontal, Context: ContextRoot},
			{Keys: "alt+h", Action: ActionSplitVertical, Context: ContextRoot},
			{Keys: "Return", Action: ActionSpawn, Context: ContextContainer},
		},
	}
}

// DefaultPath returns the configuration file location: $IFWM_CONFIG, then
// $XDG_CONFIG_HOME/ifwm/config.yaml, then ~/.config/ifwm/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ifwm", "config.yaml")
}

// Load reads path over the defaults. A missing file at the default location
// is not an error; a missing file the user named explicitly is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. A bindings list in the document
// replaces the default bindings entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks values the manager cannot recover from at runtime.
func Validate(cfg Config) error {
	var errs []error
	if cfg.BorderWidth < 0 {
		errs = append(errs, fmt.Errorf("border_width must be >= 0 (got %d)", cfg.BorderWidth))
	}
	if cfg.MinSplit < 1 {
		errs = append(errs, fmt.Errorf("min_split must be >= 1 (got %d)", cfg.MinSplit))
	}
	if cfg.Title.Padding < 0 {
		errs = append(errs, fmt.Errorf("title.padding must be >= 0 (got %d)", cfg.Title.Padding))
	}
	switch strings.ToLower(cfg.TitleClick) {
	case "left", "middle", "right", "1", "2", "3":
	default:
		errs = append(errs, fmt.Errorf("title_click_button: unknown button %q", cfg.TitleClick))
	}
	colors := map[string]string{
		"border":              cfg.Colors.Border,
		"frame":               cfg.Colors.Frame,
		"title_active":        cfg.Colors.TitleActive,
		"title_inactive":      cfg.Colors.TitleInactive,
		"title_text":          cfg.Colors.TitleText,
		"title_inactive_text": cfg.Colors.TitleInactiveText,
	}
	for _, name := range []string{"border", "frame", "title_active", "title_inactive", "title_text", "title_inactive_text"} {
		if _, err := ParseColor(colors[name]); err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", name, err))
		}
	}
	for i, b := range cfg.Bindings {
		if err := validateBinding(b); err != nil {
			errs = append(errs, fmt.Errorf("bindings[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func validateBinding(b Binding) error {
	if strings.TrimSpace(b.Keys) == "" {
		return errors.New("keys must not be empty")
	}
	switch b.Context {
	case "", ContextRoot, ContextContainer:
	default:
		return fmt.Errorf("unknown context %q (expected root or container)", b.Context)
	}
	switch b.Action {
	case ActionSplitHorizontal, ActionSplitVertical, ActionNextClient:
	case ActionSpawn:
	default:
		return fmt.Errorf("unknown action %q", b.Action)
	}
	return nil
}

// ParseColor parses "#RRGGBB" (or "RRGGBB") into a 0xRRGGBB value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// MustColor returns the parsed color or black. Use after Validate.
func MustColor(s string) uint32 {
	v, _ := ParseColor(s)
	return v
}

// SpawnCommand returns the command a spawn binding runs, defaulting to the
// configured terminal.
func (c Config) SpawnCommand(b Binding) string {
	if strings.TrimSpace(b.Command) != "" {
		return b.Command
	}
	return c.Terminal
}

// BindingContext returns the binding's context, defaulting to root.
func (b Binding) BindingContext() string {
	if b.Context == "" {
		return ContextRoot
	}
	return b.Context
}
