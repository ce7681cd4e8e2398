package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/petty/internal/render"
	"github.com/danmuck/petty/internal/store"
	"github.com/spf13/cobra"
)

var hookAliases = map[string]string{
	"content":     render.HookContent,
	"title":       render.HookTitle,
	"render_data": render.HookRenderData,
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	var (
		hook     string
		postType string
	)
	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Annotate a file (or stdin) with the configured terms",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := hookAliases[hook]
			if !ok {
				name = hook
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			text, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			cfg, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			if cfg.Store.SeedDefaultsEnabled() {
				if _, err := store.SeedEmpty(cmd.Context(), backend); err != nil {
					return err
				}
			}

			renderer := newRenderer(cfg, backend)
			if renderer.Excluded(postType) {
				_, err = cmd.OutOrStdout().Write(text)
				return err
			}
			pass := renderer.NewPass(cmd.Context())
			hooks := pass.Hooks()
			if !hooks.Has(name) {
				return fmt.Errorf("unknown hook %q (known: %v)", hook, hooks.Names())
			}
			out := hooks.Apply(name, string(text))
			if err := pass.Err(); err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&hook, "hook", "content", "render hook: content, title, render_data")
	cmd.Flags().StringVar(&postType, "post-type", "", "post type of the input, checked against excluded_post_types")
	return cmd
}
