package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rlcalc/internal/interactive"
	"github.com/mesh-intelligence/rlcalc/pkg/roll"
)

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Edit a roll interactively and watch the length update",
		Long: `Start an interactive calculator on the default roll (3.25in core, 10in
roll, 0.015in material) expressed in the working units. Type "help" for
the available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := roll.Default().Convert(opts.settings.Units)
			s := interactive.New(r, opts.settings.Precision)
			if err := s.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts.log); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
}
