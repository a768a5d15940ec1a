package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrsched/rrsched/sim"
	"github.com/rrsched/rrsched/sim/internal/testutil"
)

func TestLoadCommands_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadCommands(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoadCommands_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("0: Nope(1)\n"), 0o644))

	_, err := LoadCommands(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt")
}

// TestGoldenDataset replays each golden command file through the full
// parse → simulate → write pipeline and compares output and metrics exactly.
func TestGoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN the scenario's command file on disk
			path := filepath.Join(t.TempDir(), "input.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.CommandFile()), 0o644))
			cmds, err := LoadCommands(path)
			require.NoError(t, err)

			// WHEN replayed with invariant checking on
			cfg := sim.NewConfig(tc.Quantum, tc.Drain, true, "")
			s, err := sim.NewSimulator(cfg)
			require.NoError(t, err)
			results, err := s.Run(cmds)
			require.NoError(t, err)

			var sb strings.Builder
			require.NoError(t, WriteResults(&sb, results))

			// THEN output and metrics match exactly
			assert.Equal(t, tc.ExpectedOutput(), sb.String())
			m := s.Metrics
			assert.Equal(t, tc.Metrics.JobsInserted, m.JobsInserted, "jobs_inserted")
			assert.Equal(t, tc.Metrics.JobsCompleted, m.JobsCompleted, "jobs_completed")
			assert.Equal(t, tc.Metrics.QuantaExecuted, m.QuantaExecuted, "quanta_executed")
			assert.Equal(t, tc.Metrics.IdleTicks, m.IdleTicks, "idle_ticks")
			assert.Equal(t, tc.Metrics.SimEndedTime, m.SimEndedTime, "sim_ended_time")
			assert.Equal(t, tc.Metrics.TotalTurnaround, m.TotalTurnaround, "total_turnaround")
			assert.Equal(t, tc.Metrics.CompletionOrder, m.CompletionOrder, "completion_order")
		})
	}
}
