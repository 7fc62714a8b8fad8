package well

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects how the sensor data is grouped for presentation.
type Mode int

const (
	WholeDataset Mode = iota
	PerRun
	PerRunAndFormation
)

// String returns the canonical flag/config name of the mode.
func (m Mode) String() string {
	switch m {
	case WholeDataset:
		return "whole"
	case PerRun:
		return "run"
	case PerRunAndFormation:
		return "run-formation"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// NeedsRuns reports whether the mode requires bit-run metadata.
func (m Mode) NeedsRuns() bool { return m == PerRun || m == PerRunAndFormation }

// NeedsFormations reports whether the mode requires formation tops.
func (m Mode) NeedsFormations() bool { return m == PerRunAndFormation }

// ParseMode accepts the canonical names and a few long-form aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole", "whole-dataset", "all", "none":
		return WholeDataset, nil
	case "run", "runs", "per-run":
		return PerRun, nil
	case "run-formation", "run+formation", "per-run-formation", "formation":
		return PerRunAndFormation, nil
	}
	return 0, fmt.Errorf("%w: %q (use whole|run|run-formation)", ErrUnknownMode, s)
}

// Set implements pflag.Value so a Mode can be bound directly to a flag.
func (m *Mode) Set(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string { return "mode" }
