package sim

import (
	"fmt"

	"github.com/rrsched/rrsched/sim/trace"
)

// DefaultQuantum is the fixed slice of work granted each time a job is scheduled.
const DefaultQuantum int64 = 5

// Config groups the parameters of a single scheduler run.
type Config struct {
	Quantum         int64            // ticks granted per scheduling decision (must be > 0)
	Drain           bool             // run the queue dry after the last command
	CheckInvariants bool             // validate the JobIndex after every mutation
	TraceLevel      trace.TraceLevel // decision trace verbosity ("" = none)
}

// NewConfig creates a Config with the given fields.
// Zero-value arguments are kept as-is; use DefaultConfig for defaults.
func NewConfig(quantum int64, drain, checkInvariants bool, level trace.TraceLevel) Config {
	return Config{
		Quantum:         quantum,
		Drain:           drain,
		CheckInvariants: checkInvariants,
		TraceLevel:      level,
	}
}

// DefaultConfig returns the configuration of a plain round-robin run:
// quantum 5, no drain, no invariant checks, no tracing.
func DefaultConfig() Config {
	return Config{Quantum: DefaultQuantum, TraceLevel: trace.TraceLevelNone}
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive, got %d", c.Quantum)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q; valid levels: %v", c.TraceLevel, trace.ValidTraceLevelNames())
	}
	return nil
}
