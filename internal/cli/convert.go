package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rlcalc/pkg/roll"
	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <quantity> <unit>",
		Short: "Convert a length to another unit",
		Long: `Convert a length such as 3.25in or "254 mm" to another unit. A bare
number is read in the working units (--units).`,
		Example: `  rlcalc convert 3.25in mm
  rlcalc convert "15 mil" in
  rlcalc --units ft convert 2 yd`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := units.Parse(args[0])
			if err != nil {
				q, err = roll.ResolveText(args[0], opts.settings.Units)
				if err != nil {
					return userError(err)
				}
			}
			target, err := units.ParseUnit(args[1])
			if err != nil {
				return userError(err)
			}

			out := q.Convert(target)
			opts.log.Debug().Stringer("from", q).Stringer("to", out).Msg("converted")
			fmt.Fprintln(cmd.OutOrStdout(), formatConverted(out, opts, cmd))
			return nil
		},
	}
}

// formatConverted prints with --precision when it was asked for, and
// otherwise with twelve significant digits, which hides the noise of the
// millimeter round trip ("0.015in", not "0.015000000000000001in").
func formatConverted(q units.Quantity, opts *rootOptions, cmd *cobra.Command) string {
	if cmd.Flags().Changed("precision") {
		return q.Fixed(opts.settings.Precision)
	}
	return strconv.FormatFloat(q.Magnitude(), 'g', 12, 64) + q.Unit().Suffix()
}
