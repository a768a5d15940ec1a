// Tracks run-wide scheduling metrics such as quanta executed, busy/idle ticks and turnaround.

package sim

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sugawarayuuta/sonnet"
)

// Metrics aggregates statistics about a scheduler run for final reporting.
type Metrics struct {
	RunID           string `json:"run_id"`
	JobsInserted    int    `json:"jobs_inserted"`
	JobsCompleted   int    `json:"jobs_completed"`
	QuantaExecuted  int    `json:"quanta_executed"`
	BusyTicks       int64  `json:"busy_ticks"`       // clock advanced by executing work
	IdleTicks       int64  `json:"idle_ticks"`       // clock advanced with an empty queue
	QueriesAnswered int    `json:"queries_answered"` // NextJob, PreviousJob and PrintJob results
	SimEndedTime    int64  `json:"sim_ended_time"`
	TotalTurnaround int64  `json:"total_turnaround"` // sum of (completion - arrival)
	CompletionOrder []int  `json:"completion_order"`
}

// NewMetrics creates an empty Metrics tagged with the given run ID.
func NewMetrics(runID string) *Metrics {
	return &Metrics{
		RunID:           runID,
		CompletionOrder: make([]int, 0),
	}
}

// MeanTurnaround returns the average ticks from arrival to completion, or 0.
func (m *Metrics) MeanTurnaround() float64 {
	if m.JobsCompleted == 0 {
		return 0
	}
	return float64(m.TotalTurnaround) / float64(m.JobsCompleted)
}

// Print writes a human-readable summary of the run.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID            : %s\n", m.RunID)
	fmt.Fprintf(w, "Jobs Inserted     : %d\n", m.JobsInserted)
	fmt.Fprintf(w, "Jobs Completed    : %d\n", m.JobsCompleted)
	fmt.Fprintf(w, "Quanta Executed   : %d\n", m.QuantaExecuted)
	fmt.Fprintf(w, "Busy / Idle Ticks : %d / %d\n", m.BusyTicks, m.IdleTicks)
	fmt.Fprintf(w, "Queries Answered  : %d\n", m.QueriesAnswered)
	fmt.Fprintf(w, "Sim Ended Time    : %d ticks\n", m.SimEndedTime)
	if m.JobsCompleted > 0 {
		fmt.Fprintf(w, "Mean Turnaround   : %.2f ticks\n", m.MeanTurnaround())
	}
}

// SaveResults writes the metrics as JSON to path.
func (m *Metrics) SaveResults(path string) error {
	data, err := sonnet.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	logrus.Infof("Metrics written to: %s", path)
	return nil
}
