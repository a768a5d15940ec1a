package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrsched/rrsched/sim/workload"
)

func TestWriteCommands_FileRoundTripsThroughReplay(t *testing.T) {
	// GIVEN a generated workload
	dir := t.TempDir()
	specPath := writeFile(t, dir, "gen.yaml", `seed: 11
num_jobs: 20
max_id: 100
total_time:
  min: 1
  max: 30
mean_interarrival: 5
query_ratio: 0.5
`)
	spec, err := workload.LoadGeneratorSpec(specPath)
	require.NoError(t, err)
	cmds, err := workload.Generate(spec)
	require.NoError(t, err)

	// WHEN written to a command file and loaded back
	path := filepath.Join(dir, "cmds.txt")
	require.NoError(t, writeCommands(path, cmds))
	loaded, err := workload.LoadCommands(path)

	// THEN the same commands come back
	require.NoError(t, err)
	require.Len(t, loaded, len(cmds))
	for i := range cmds {
		assert.Equal(t, cmds[i].String(), loaded[i].String())
	}
}
