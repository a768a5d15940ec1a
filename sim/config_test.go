package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rrsched/rrsched/sim/trace"
)

func TestNewConfig_FieldEquivalence(t *testing.T) {
	got := NewConfig(7, true, true, trace.TraceLevelQuanta)
	want := Config{
		Quantum:         7,
		Drain:           true,
		CheckInvariants: true,
		TraceLevel:      trace.TraceLevelQuanta,
	}
	assert.Equal(t, want, got)
}

func TestNewConfig_ZeroValues_NoDefaults(t *testing.T) {
	// Zero-value arguments must NOT inject non-zero defaults
	got := NewConfig(0, false, false, "")
	assert.Equal(t, Config{}, got)
}

func TestDefaultConfig_QuantumIsFive(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(5), cfg.Quantum)
	assert.False(t, cfg.Drain)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero quantum", Config{Quantum: 0}, true},
		{"negative quantum", Config{Quantum: -5}, true},
		{"empty trace level", Config{Quantum: 5, TraceLevel: ""}, false},
		{"completions trace", Config{Quantum: 5, TraceLevel: trace.TraceLevelCompletions}, false},
		{"unknown trace level", Config{Quantum: 5, TraceLevel: "verbose"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
