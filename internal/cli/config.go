package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rlcalc/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.WriteDefault(opts.resolvedConfigDir)
			if err != nil {
				return sysError(err)
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), path, "already exists")
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(opts.settings)
			if err != nil {
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config dir: %s\n%s", opts.resolvedConfigDir, data)
			return nil
		},
	})
	return cmd
}
