package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the supported units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SUFFIX\tNAME\tMILLIMETERS\tACCEPTS")
			for _, u := range units.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					u.Suffix(),
					u.Name(),
					strconv.FormatFloat(u.Millimeters(), 'f', -1, 64),
					strings.Join(u.Synonyms(), " "),
				)
			}
			return w.Flush()
		},
	}
}
