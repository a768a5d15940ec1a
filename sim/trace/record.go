// Package trace provides scheduling-trace recording for round-robin run analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// QuantumRecord captures a single quantum granted to a job.
type QuantumRecord struct {
	JobID    int
	Start    int64 // clock when the quantum began
	Slice    int64 // ticks actually used (< quantum on a job's final slice)
	Executed int64 // job's executed time after the quantum
	Total    int64
}

// CompletionRecord captures the moment a job finished.
type CompletionRecord struct {
	JobID   int
	Arrival int64
	Clock   int64 // completion time
	Total   int64
	Quanta  int // quanta the job received
}

// Turnaround returns the ticks between the job's arrival and its completion.
func (r CompletionRecord) Turnaround() int64 {
	return r.Clock - r.Arrival
}
