package main

import (
	"fmt"

	"github.com/danmuck/petty/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or validate the service config",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(root.configPath, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", root.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the config at --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fileExists(root.configPath) {
				return fmt.Errorf("config not found: %s", root.configPath)
			}
			cfg, err := config.LoadServiceConfig(root.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated %s (store=%s)\n", root.configPath, cfg.Store.Driver)
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
