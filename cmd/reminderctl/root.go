package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-calendar-remind/internal/bootstrap"
	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "reminderctl",
		Short: "Maintenance commands for the calendar reminder service",
		Long: `Maintenance commands for the calendar reminder service.

Configuration is read the same way as the server: defaults, then the YAML
file given by --config or CONFIG_FILE, then environment variables.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newListCmd(opts),
		newSweepCmd(opts),
		newScanCmd(opts),
		newTokenCmd(opts),
	)

	return root
}

func (o *rootOptions) load() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, logging.HandlerConfig{
		Level:         logging.ParseLevel(cfg.Log.Level),
		Service:       logging.ServiceInfo{Name: "reminderctl"},
		Environment:   logging.EnvDev,
		DefaultModule: logging.Module("cli"),
	})))

	return cfg, nil
}

// withBackends loads the configuration, opens the stores and hands them to
// fn, closing them afterwards.
func (o *rootOptions) withBackends(
	ctx context.Context,
	fn func(cfg *config.Config, backends *bootstrap.Backends) error,
) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}

	backends, err := bootstrap.OpenBackends(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open reminder store: %w", err)
	}

	defer func() {
		if err := backends.Close(); err != nil {
			slog.Warn("failed to close backends", "error", err)
		}
	}()

	return fn(cfg, backends)
}
