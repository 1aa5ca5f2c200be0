// Package logging builds the zerolog logger used by the rlcalc commands.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/rlcalc/pkg/roll"
)

// New returns a console logger writing to w at the named level
// ("debug", "info", "warn", ...).
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "rlcalc").Logger(), nil
}

// Roll adapts a roll for structured log events:
//
//	log.Debug().Object("roll", logging.Roll{r}).Msg("resolved roll")
type Roll struct {
	roll.Roll
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (r Roll) MarshalZerologObject(e *zerolog.Event) {
	e.Str("unit", r.Unit().Suffix()).
		Float64("coreod", r.CoreOD().Magnitude()).
		Float64("rollod", r.RollOD().Magnitude()).
		Float64("thickness", r.Thickness().Magnitude())
}
