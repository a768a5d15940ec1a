package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rrsched/rrsched/sim"
	"github.com/rrsched/rrsched/sim/trace"
)

// FileConfig is the --config defaults file. Absent keys leave the flag value alone.
// All keys must be listed to satisfy KnownFields(true) strict parsing.
type FileConfig struct {
	Quantum         *int64  `yaml:"quantum"`
	Drain           *bool   `yaml:"drain"`
	CheckInvariants *bool   `yaml:"check_invariants"`
	TraceLevel      *string `yaml:"trace_level"`
	Output          *string `yaml:"output"`
}

// loadFileConfig parses a defaults file with strict field checking.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var fc FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}

// applyTo copies file values into cfg and out, skipping every flag the
// user set explicitly on the command line.
func (fc *FileConfig) applyTo(cfg *sim.Config, out *string, changed func(name string) bool) {
	if fc.Quantum != nil && !changed("quantum") {
		cfg.Quantum = *fc.Quantum
	}
	if fc.Drain != nil && !changed("drain") {
		cfg.Drain = *fc.Drain
	}
	if fc.CheckInvariants != nil && !changed("check-invariants") {
		cfg.CheckInvariants = *fc.CheckInvariants
	}
	if fc.TraceLevel != nil && !changed("trace") {
		cfg.TraceLevel = trace.TraceLevel(*fc.TraceLevel)
	}
	if fc.Output != nil && out != nil && !changed("output") {
		*out = *fc.Output
	}
}
