package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/config"
	"github.com/mj1618/ifwm/internal/model"
	"github.com/mj1618/ifwm/internal/platform"
)

// loadConfig reads the config file named by --config (or the default
// location), applies flag overrides and validates the result. It returns
// the path it read from.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, err
	}
	if path == "" {
		path = config.DefaultPath()
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"display", &cfg.Display},
		{"state-file", &cfg.StateFile},
		{"terminal", &cfg.Terminal},
		{"log-file", &cfg.Log.File},
		{"log-level", &cfg.Log.Level},
	}
	for _, o := range overrides {
		if f := cmd.Flags().Lookup(o.flag); f != nil && f.Changed {
			*o.dst = f.Value.String()
		}
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, path, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

// statePath is where the manager writes its layout snapshot.
func statePath(cfg config.Config) string {
	if cfg.StateFile != "" {
		return cfg.StateFile
	}
	return model.DefaultStatePath(cfg.Display)
}

// providerOptions converts validated colors and display settings for the
// display backend.
func providerOptions(cfg config.Config) platform.Options {
	return platform.Options{
		Display:     cfg.Display,
		BorderColor: config.MustColor(cfg.Colors.Border),
		FrameColor:  config.MustColor(cfg.Colors.Frame),
		Theme: platform.TitleTheme{
			ActiveBackground:   config.MustColor(cfg.Colors.TitleActive),
			InactiveBackground: config.MustColor(cfg.Colors.TitleInactive),
			Foreground:         config.MustColor(cfg.Colors.TitleText),
			InactiveForeground: config.MustColor(cfg.Colors.TitleInactiveText),
			Padding:            cfg.Title.Padding,
		},
		Shell: cfg.Shell,
	}
}

// parseWindowID accepts decimal or 0x-prefixed hex window ids.
func parseWindowID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return uint32(v), nil
}
