package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/petty/internal/store"
	"github.com/danmuck/petty/internal/symbols"
	"github.com/danmuck/petty/internal/terms"
	"github.com/spf13/cobra"
)

func newTermsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Manage the term mapping",
	}
	cmd.AddCommand(
		newTermsListCmd(root),
		newTermsSetCmd(root),
		newTermsRemoveCmd(root),
		newTermsDefaultsCmd(root),
		newTermsExportCmd(root),
		newTermsImportCmd(root),
	)
	return cmd
}

func newTermsListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			m, err := backend.Load(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TERM\tSYMBOL\tSTORED")
			for _, e := range m {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Term, symbols.Decode(e.Symbol), e.Symbol)
			}
			return tw.Flush()
		},
	}
}

func newTermsSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set TERM SYMBOL",
		Short: "Add or update a term (symbol: registered, copyright, trademark, or entity)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := terms.SanitizeText(args[0])
			if term == "" {
				return fmt.Errorf("term is empty")
			}
			sym, err := symbols.Parse(args[1])
			if err != nil {
				return err
			}
			_, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			m, err := backend.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := backend.Save(cmd.Context(), m.Set(term, sym.Entity())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", term, sym.Glyph())
			return nil
		},
	}
}

func newTermsRemoveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TERM",
		Short: "Remove a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			m, err := backend.Load(cmd.Context())
			if err != nil {
				return err
			}
			if _, ok := m.Get(args[0]); !ok {
				return fmt.Errorf("term %q not found", args[0])
			}
			return backend.Save(cmd.Context(), m.Remove(args[0]))
		},
	}
}

func newTermsDefaultsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Merge the default brand terms without overwriting existing ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			added, err := store.Activate(cmd.Context(), backend)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d default terms\n", added)
			return nil
		},
	}
}

func newTermsExportCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the mapping as toml, yaml, or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			m, err := backend.Load(cmd.Context())
			if err != nil {
				return err
			}
			out, err := encodeMapping(strings.ToLower(format), m)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml, yaml, json")
	return cmd
}

func newTermsImportCmd(root *rootOptions) *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace (or merge into) the mapping from a toml, yaml, or json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(args[0])), ".")
			incoming, err := decodeMapping(format, data)
			if err != nil {
				return err
			}

			_, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			if merge {
				existing, err := backend.Load(cmd.Context())
				if err != nil {
					return err
				}
				incoming = existing.Merge(incoming)
			}
			if err := backend.Save(cmd.Context(), incoming); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d terms\n", incoming.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "keep existing terms and only add new ones")
	return cmd
}

func encodeMapping(format string, m terms.Mapping) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yml":
		return store.Encode(store.FormatYAML, m)
	default:
		return store.Encode(store.Format(format), m)
	}
}

func decodeMapping(format string, data []byte) (terms.Mapping, error) {
	switch format {
	case "json":
		var m terms.Mapping
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return m.Normalize(), nil
	case "yml":
		return store.Decode(store.FormatYAML, data)
	default:
		return store.Decode(store.Format(format), data)
	}
}
