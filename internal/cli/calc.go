package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rlcalc/internal/logging"
	"github.com/mesh-intelligence/rlcalc/pkg/rlcalc"
	"github.com/mesh-intelligence/rlcalc/pkg/roll"
	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

// calcOptions holds the roll dimensions given as named flags, indexed by
// roll.Field.
type calcOptions struct {
	named    [3]string
	jsonMode bool
}

func newCalcCmd(opts *rootOptions) *cobra.Command {
	c := &calcOptions{}
	cmd := &cobra.Command{
		Use:   "rlcalc [coreod rollod thickness]",
		Short: "Estimate the length of material on a roll",
		Long: `rlcalc estimates the length of material wound on a roll from the core
outer diameter, the roll outer diameter and the material thickness.

Each value is either a bare number in the working units (--units) or a
quantity with its own unit such as 76mm, 10in, 0.015" or 15 mil.`,
		Example: `  rlcalc 3.25 10 0.015
  rlcalc -c 82.55mm -r 10in -t "15 mil"
  rlcalc --units mm --convert m 82.55 254 0.381`,
		Version: rlcalc.Version,
		Args:    cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts, c, args)
		},
	}

	cmd.Flags().StringVarP(&c.named[roll.CoreOD], "coreod", "c", "", "outside diameter of the core")
	cmd.Flags().StringVarP(&c.named[roll.RollOD], "rollod", "r", "", "outside diameter of the wound roll")
	cmd.Flags().StringVarP(&c.named[roll.Thickness], "thickness", "t", "", "thickness of the material")
	cmd.Flags().BoolVar(&c.jsonMode, "json", false, "output as JSON")
	return cmd
}

// inputs pairs each roll field with its named flag or positional
// argument. Giving both for the same field is an error.
func (c *calcOptions) inputs(args []string) ([3]roll.Input, [3]string, error) {
	var in [3]roll.Input
	var raw [3]string
	for i, f := range roll.Fields() {
		named := c.named[f]
		var positional string
		if i < len(args) {
			positional = args[i]
		}
		if named != "" && positional != "" {
			return in, raw, fmt.Errorf("%s given both as --%s and as argument %d", f, f, i+1)
		}
		raw[i] = named + positional
		in[i] = roll.Text(raw[i])
	}
	return in, raw, nil
}

func runCalc(cmd *cobra.Command, opts *rootOptions, c *calcOptions, args []string) error {
	in, raw, err := c.inputs(args)
	if err != nil {
		return userError(err)
	}

	r, err := roll.Build(opts.settings.Units, in[roll.CoreOD], in[roll.RollOD], in[roll.Thickness])
	if err != nil {
		return userError(err)
	}
	for i, f := range roll.Fields() {
		if v := r.Get(f).Magnitude(); !(v > 0) || math.IsInf(v, 0) {
			return userError(fmt.Errorf("%s must be positive: %q", f, raw[i]))
		}
	}
	opts.log.Debug().Object("roll", logging.Roll{Roll: r}).Msg("resolved roll")

	length, err := r.Length()
	if err != nil {
		return userError(err)
	}
	wraps, err := r.Wraps()
	if err != nil {
		return userError(err)
	}
	out := length.Convert(opts.settings.OutputUnit())
	opts.log.Debug().Int("wraps", wraps).Stringer("length", out).Msg("computed length")

	if c.jsonMode {
		return writeJSON(cmd, newCalcResult(r, out, wraps, opts.settings.Precision))
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Fixed(opts.settings.Precision))
	return nil
}

type quantityJSON struct {
	Magnitude float64    `json:"magnitude"`
	Unit      units.Unit `json:"unit"`
}

func toJSON(q units.Quantity) quantityJSON {
	return quantityJSON{Magnitude: q.Magnitude(), Unit: q.Unit()}
}

type calcResult struct {
	CoreOD    quantityJSON `json:"coreod"`
	RollOD    quantityJSON `json:"rollod"`
	Thickness quantityJSON `json:"thickness"`
	Length    quantityJSON `json:"length"`
	Wraps     int          `json:"wraps"`
	Formatted string       `json:"formatted"`
}

func newCalcResult(r roll.Roll, length units.Quantity, wraps, precision int) calcResult {
	return calcResult{
		CoreOD:    toJSON(r.CoreOD()),
		RollOD:    toJSON(r.RollOD()),
		Thickness: toJSON(r.Thickness()),
		Length:    toJSON(length),
		Wraps:     wraps,
		Formatted: length.Fixed(precision),
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
