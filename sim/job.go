// Defines the Job struct that models a single unit of work in the round-robin simulation.
// Tracks arrival time, total work, and work already performed.

package sim

import (
	"fmt"
)

// JobState represents the lifecycle state of a job.
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
)

// Job models one job's lifecycle in the simulation.
// ID and TotalTime never change after creation. ExecutedTime only grows,
// and reaches TotalTime exactly when the job completes.
type Job struct {
	ID           int   // Unique job identifier (key of the JobIndex)
	TotalTime    int64 // Total work required, in ticks
	ExecutedTime int64 // Work performed so far (key of the ExecutionQueue)
	ArrivalTime  int64 // Clock value when the job was inserted

	State          JobState // pending, running, completed
	QuantaExecuted int      // Number of quanta granted to this job
	CompletionTime int64    // Clock value when the job completed (0 until then)
}

// NewJob creates a pending job with no work performed.
func NewJob(id int, totalTime int64, arrivalTime int64) *Job {
	return &Job{
		ID:          id,
		TotalTime:   totalTime,
		ArrivalTime: arrivalTime,
		State:       StatePending,
	}
}

// Remaining returns the work still owed to the job.
func (j *Job) Remaining() int64 {
	return j.TotalTime - j.ExecutedTime
}

// IsComplete reports whether all of the job's work has been performed.
func (j *Job) IsComplete() bool {
	return j.ExecutedTime == j.TotalTime
}

// Run grants the job up to quantum ticks of work and returns the amount
// actually used. The final slice of a job is shorter than a full quantum.
func (j *Job) Run(quantum int64) int64 {
	if quantum <= 0 {
		panic(fmt.Sprintf("Run: quantum must be positive, got %d", quantum))
	}
	slice := min(quantum, j.Remaining())
	j.ExecutedTime += slice
	j.QuantaExecuted++
	if j.IsComplete() {
		j.State = StateCompleted
	} else {
		j.State = StateRunning
	}
	return slice
}

// Snapshot returns an immutable copy of the job's externally visible triple.
func (j *Job) Snapshot() JobSnapshot {
	return JobSnapshot{ID: j.ID, ExecutedTime: j.ExecutedTime, TotalTime: j.TotalTime}
}

func (j Job) String() string {
	return fmt.Sprintf("Job: (ID: %d, State: %s, Executed: %d/%d, ArrivalTime: %d)", j.ID, j.State, j.ExecutedTime, j.TotalTime, j.ArrivalTime)
}

// JobSnapshot is the (id, executedTime, totalTime) triple reported by queries.
// The zero value stands for "no job".
type JobSnapshot struct {
	ID           int
	ExecutedTime int64
	TotalTime    int64
}

// String renders the triple as "(id,executed,total)".
func (s JobSnapshot) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.ID, s.ExecutedTime, s.TotalTime)
}
