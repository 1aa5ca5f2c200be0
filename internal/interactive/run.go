package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/rlcalc/pkg/roll"
	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

const prompt = "> "

const helpText = `Commands:
  core <value>    set the core outer diameter (e.g. 3.25 or 76mm)
  roll <value>    set the roll outer diameter
  thick <value>   set the material thickness
  units <unit>    convert everything to another unit (mil, in, ft, yd, mm, cm, m)
  show            redraw the calculator
  help            show this help
  quit            leave
`

var fieldCommands = map[string]roll.Field{
	"core":      roll.CoreOD,
	"coreod":    roll.CoreOD,
	"roll":      roll.RollOD,
	"rollod":    roll.RollOD,
	"thick":     roll.Thickness,
	"thickness": roll.Thickness,
}

// Run reads commands from in, one per line, and writes the session view
// to out after every change. It returns when in is exhausted, on "quit",
// or when ctx is cancelled.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer, log zerolog.Logger) error {
	fmt.Fprint(out, s.View(), prompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)
		cmd = strings.ToLower(cmd)

		switch cmd {
		case "":
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprint(out, helpText)
		case "show":
			fmt.Fprint(out, s.View())
		case "units", "unit":
			u, err := units.ParseUnit(arg)
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
				break
			}
			s.ChangeUnits(u)
			log.Debug().Str("unit", u.Suffix()).Msg("converted roll")
			fmt.Fprint(out, s.View())
		default:
			f, ok := fieldCommands[cmd]
			if !ok {
				fmt.Fprintf(out, "unknown command %q (try help)\n", cmd)
				break
			}
			if err := s.Edit(f, arg); err != nil {
				log.Debug().Err(err).Stringer("field", f).Str("text", arg).Msg("edit not applied")
			}
			fmt.Fprint(out, s.View())
		}
		fmt.Fprint(out, prompt)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
