package sim

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Command defines the interface for all inputs consumed by the scheduler loop.
// Each command carries a Timestamp (in ticks) and an Execute method that
// applies it to the simulator. Queries return a Result; Insert returns nil.
type Command interface {
	Timestamp() int64
	Execute(*Simulator) (*Result, error)
	String() string
}

// Result is the answer to one query command.
// An empty Jobs slice means "no job" and renders as (0,0,0).
type Result struct {
	Time  int64         // timestamp of the query that produced it
	Query string        // command name, e.g. "NextJob"
	Jobs  []JobSnapshot // matching jobs in ascending ID order
}

// String renders the result as comma-joined (id,executed,total) triples.
func (r Result) String() string {
	if len(r.Jobs) == 0 {
		return JobSnapshot{}.String()
	}
	parts := make([]string, len(r.Jobs))
	for i, s := range r.Jobs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// InsertCommand creates a job and hands it to both the queue and the index.
type InsertCommand struct {
	time      int64
	JobID     int
	TotalTime int64
}

// NewInsertCommand creates an Insert(id, total) command at the given time.
func NewInsertCommand(time int64, id int, total int64) *InsertCommand {
	return &InsertCommand{time: time, JobID: id, TotalTime: total}
}

// Timestamp returns the scheduled time of the InsertCommand.
func (c *InsertCommand) Timestamp() int64 { return c.time }

// Execute inserts the new job.
func (c *InsertCommand) Execute(sim *Simulator) (*Result, error) {
	logrus.Debugf("<< Insert: job %d (total %d) at %d ticks", c.JobID, c.TotalTime, c.time)
	return nil, sim.InsertJob(c.JobID, c.TotalTime)
}

func (c *InsertCommand) String() string {
	return fmt.Sprintf("%d: Insert(%d,%d)", c.time, c.JobID, c.TotalTime)
}

// NextJobCommand asks for the job with the smallest ID greater than JobID.
type NextJobCommand struct {
	time  int64
	JobID int
}

// NewNextJobCommand creates a NextJob(id) command at the given time.
func NewNextJobCommand(time int64, id int) *NextJobCommand {
	return &NextJobCommand{time: time, JobID: id}
}

// Timestamp returns the scheduled time of the NextJobCommand.
func (c *NextJobCommand) Timestamp() int64 { return c.time }

// Execute answers the query against the JobIndex.
func (c *NextJobCommand) Execute(sim *Simulator) (*Result, error) {
	logrus.Debugf("<< NextJob(%d) at %d ticks", c.JobID, c.time)
	j, ok := sim.Index.Next(c.JobID)
	return sim.answer(c.time, "NextJob", j, ok), nil
}

func (c *NextJobCommand) String() string {
	return fmt.Sprintf("%d: NextJob(%d)", c.time, c.JobID)
}

// PreviousJobCommand asks for the job with the largest ID less than JobID.
type PreviousJobCommand struct {
	time  int64
	JobID int
}

// NewPreviousJobCommand creates a PreviousJob(id) command at the given time.
func NewPreviousJobCommand(time int64, id int) *PreviousJobCommand {
	return &PreviousJobCommand{time: time, JobID: id}
}

// Timestamp returns the scheduled time of the PreviousJobCommand.
func (c *PreviousJobCommand) Timestamp() int64 { return c.time }

// Execute answers the query against the JobIndex.
func (c *PreviousJobCommand) Execute(sim *Simulator) (*Result, error) {
	logrus.Debugf("<< PreviousJob(%d) at %d ticks", c.JobID, c.time)
	j, ok := sim.Index.Previous(c.JobID)
	return sim.answer(c.time, "PreviousJob", j, ok), nil
}

func (c *PreviousJobCommand) String() string {
	return fmt.Sprintf("%d: PreviousJob(%d)", c.time, c.JobID)
}

// PrintJobCommand asks for every job with Lo <= ID <= Hi.
// PrintJob(id) is the single-ID form with Lo == Hi.
type PrintJobCommand struct {
	time   int64
	Lo, Hi int
}

// NewPrintJobCommand creates a PrintJob(lo, hi) command at the given time.
func NewPrintJobCommand(time int64, lo, hi int) *PrintJobCommand {
	return &PrintJobCommand{time: time, Lo: lo, Hi: hi}
}

// Timestamp returns the scheduled time of the PrintJobCommand.
func (c *PrintJobCommand) Timestamp() int64 { return c.time }

// Execute answers the range query against the JobIndex.
func (c *PrintJobCommand) Execute(sim *Simulator) (*Result, error) {
	logrus.Debugf("<< PrintJob(%d,%d) at %d ticks", c.Lo, c.Hi, c.time)
	jobs := sim.Index.Range(c.Lo, c.Hi)
	res := &Result{Time: c.time, Query: "PrintJob", Jobs: make([]JobSnapshot, len(jobs))}
	for i, j := range jobs {
		res.Jobs[i] = j.Snapshot()
	}
	sim.Metrics.QueriesAnswered++
	return res, nil
}

func (c *PrintJobCommand) String() string {
	if c.Lo == c.Hi {
		return fmt.Sprintf("%d: PrintJob(%d)", c.time, c.Lo)
	}
	return fmt.Sprintf("%d: PrintJob(%d,%d)", c.time, c.Lo, c.Hi)
}
