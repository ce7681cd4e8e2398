package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danmuck/petty/internal/config"
	"github.com/danmuck/petty/internal/logging"
	"github.com/danmuck/petty/internal/render"
	"github.com/danmuck/petty/internal/store"
	"github.com/danmuck/petty/internal/substitute"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "pettyctl.toml"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "pettyctl",
		Short:         "Annotate brand terms with trademark symbols",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.ConfigureRuntime()
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "service config path")

	cmd.AddCommand(
		newServeCmd(opts),
		newApplyCmd(opts),
		newTermsCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// load reads the config. A missing default config falls back to defaults;
// a missing explicit config is an error.
func (o *rootOptions) load(cmd *cobra.Command) (config.ServiceConfig, error) {
	cfg, err := config.LoadServiceConfig(o.configPath)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.DefaultServiceConfig(), nil
	}
	return config.ServiceConfig{}, err
}

func (o *rootOptions) openStore(cmd *cobra.Command) (config.ServiceConfig, store.Backend, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return cfg, nil, err
	}
	backend, err := store.Open(cfg.Store)
	if err != nil {
		return cfg, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return cfg, backend, nil
}

func newRenderer(cfg config.ServiceConfig, s store.Store) *render.Renderer {
	engine := substitute.New(substitute.Options{SkipDecorated: cfg.Engine.SkipDecoratedEnabled()})
	return render.NewRenderer(s,
		render.WithEngine(engine),
		render.WithExcludedPostTypes(cfg.ExcludedPostTypes),
	)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
