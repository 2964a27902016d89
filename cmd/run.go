package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/logging"
	"github.com/mj1618/ifwm/internal/model"
	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/wm"
)

func runManager(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(logging.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	provider, err := platform.NewProvider(providerOptions(cfg))
	if err != nil {
		log.Error().Err(err).Str("display", cfg.Display).Msg("cannot open display")
		return err
	}
	defer provider.Conn.Close()

	m, err := wm.New(provider, cfg, log)
	if err != nil {
		return err
	}
	statePath := statePath(cfg)
	var prev model.Layout
	m.OnLayout(func(l model.Layout) {
		logLayoutChanges(log, prev, l)
		prev = l
		if err := model.SaveLayout(statePath, l); err != nil {
			log.Warn().Err(err).Str("path", statePath).Msg("write layout snapshot")
		}
	})
	defer os.Remove(statePath)

	if err := m.Start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	log.Info().
		Str("config", path).
		Str("state", statePath).
		Int("containers", len(m.Containers())).
		Int("bindings", len(m.Keymap().Bindings())).
		Msg("ifwm running")

	stop := closeOnSignal(provider.Conn, log)
	defer stop()

	if err := m.Run(); err != nil && !errors.Is(err, platform.ErrClosed) {
		return err
	}
	log.Info().Msg("ifwm exiting")
	return nil
}

// closeOnSignal closes conn on SIGINT or SIGTERM so Run returns.
func closeOnSignal(conn platform.Conn, log zerolog.Logger) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			conn.Close()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// logLayoutChanges writes one debug entry per container that differs
// between two snapshots.
func logLayoutChanges(log zerolog.Logger, prev, curr model.Layout) {
	if log.GetLevel() > zerolog.DebugLevel {
		return
	}
	for _, c := range model.DiffLayouts(prev, curr) {
		ev := log.Debug().Str("change", string(c.Type)).Uint32("container", c.Container)
		for field, diff := range c.Changes {
			ev = ev.Strs(field, diff[:])
		}
		ev.Msg("layout changed")
	}
}
