// Package testutil provides shared test infrastructure for the rrsched simulator.
// It holds the golden dataset types and loader used by the sim/ and
// sim/workload/ test packages and by the CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sugawarayuuta/sonnet"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one end-to-end scenario: a command file, the query
// output it must produce and the run metrics it must end with.
type GoldenTestCase struct {
	Name     string        `json:"name"`
	Quantum  int64         `json:"quantum"`
	Drain    bool          `json:"drain"`
	Commands []string      `json:"commands"`
	Output   []string      `json:"output"`
	Metrics  GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
// All values are exact: the simulation is deterministic.
type GoldenMetrics struct {
	JobsInserted    int   `json:"jobs_inserted"`
	JobsCompleted   int   `json:"jobs_completed"`
	QuantaExecuted  int   `json:"quanta_executed"`
	IdleTicks       int64 `json:"idle_ticks"`
	SimEndedTime    int64 `json:"sim_ended_time"`
	TotalTurnaround int64 `json:"total_turnaround"`
	CompletionOrder []int `json:"completion_order"`
}

// CommandFile returns the scenario's commands in command-file form.
func (tc GoldenTestCase) CommandFile() string {
	return strings.Join(tc.Commands, "\n") + "\n"
}

// ExpectedOutput returns the scenario's result lines in output-file form.
func (tc GoldenTestCase) ExpectedOutput() string {
	if len(tc.Output) == 0 {
		return ""
	}
	return strings.Join(tc.Output, "\n") + "\n"
}

// GoldenDatasetPath returns the absolute path of testdata/goldendataset.json.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func GoldenDatasetPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(GoldenDatasetPath(t))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := sonnet.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}
	return &dataset
}
