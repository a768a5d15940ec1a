// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rrsched/rrsched/sim/trace"
)

var (
	// ErrDuplicateJob is returned when Insert names an ID that is still live.
	ErrDuplicateJob = errors.New("duplicate job id")
	// ErrTimeRegression is returned when a command is older than its predecessor.
	ErrTimeRegression = errors.New("command timestamp moves backwards")
	// ErrInvariantViolation is returned when invariant checking finds a malformed index.
	ErrInvariantViolation = errors.New("job index invariant violated")
)

// Simulator is the core object that holds the clock, both job structures and the scheduling loop.
// It is single-threaded: every method must be called from one goroutine.
type Simulator struct {
	Clock   int64
	Quantum int64
	// Queue holds every incomplete job, keyed by executed time
	Queue *ExecutionQueue
	// Index holds every incomplete job, keyed by ID; queries read only from here
	Index   *JobIndex
	Metrics *Metrics
	Trace   *trace.SimulationTrace

	config          Config
	lastCommandTime int64
	commandCount    int
}

// NewSimulator creates a simulator with freshly initialized structures.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	runID := uuid.NewString()
	return &Simulator{
		Clock:   0,
		Quantum: cfg.Quantum,
		Queue:   NewExecutionQueue(),
		Index:   NewJobIndex(),
		Metrics: NewMetrics(runID),
		Trace:   trace.NewSimulationTrace(cfg.TraceLevel, runID),
		config:  cfg,
	}, nil
}

// Run handles every command in order and returns the query results.
// With Config.Drain set, remaining jobs are run to completion afterwards.
func (sim *Simulator) Run(cmds []Command) ([]Result, error) {
	results := make([]Result, 0)
	for _, cmd := range cmds {
		res, err := sim.Handle(cmd)
		if err != nil {
			return results, err
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	if sim.config.Drain {
		if err := sim.Drain(); err != nil {
			return results, err
		}
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return results, nil
}

// Handle processes one command: fast-forward to its timestamp, apply it,
// then grant one further quantum to the head of the queue.
func (sim *Simulator) Handle(cmd Command) (*Result, error) {
	t := cmd.Timestamp()
	if sim.commandCount > 0 && t < sim.lastCommandTime {
		return nil, fmt.Errorf("%s after time %d: %w", cmd, sim.lastCommandTime, ErrTimeRegression)
	}
	sim.lastCommandTime = t
	sim.commandCount++

	if err := sim.AdvanceTo(t); err != nil {
		return nil, err
	}
	res, err := sim.Apply(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := sim.Tick(); err != nil {
		return nil, err
	}
	return res, nil
}

// AdvanceTo runs quanta until the clock reaches t. If the queue runs dry
// first, the clock jumps straight to t. A clock already past t is left alone.
func (sim *Simulator) AdvanceTo(t int64) error {
	for sim.Clock < t {
		j, ok := sim.Queue.PopMin()
		if !ok {
			logrus.Debugf("[tick %07d] Idle until %d", sim.Clock, t)
			sim.Metrics.IdleTicks += t - sim.Clock
			sim.Clock = t
			break
		}
		if err := sim.execute(j); err != nil {
			return err
		}
	}
	return nil
}

// Apply executes a command against the current state without moving the clock.
func (sim *Simulator) Apply(cmd Command) (*Result, error) {
	logrus.Debugf("[tick %07d] Applying %s", sim.Clock, cmd)
	res, err := cmd.Execute(sim)
	if err != nil {
		return nil, err
	}
	return res, sim.checkInvariants()
}

// Tick grants one quantum to the least-executed job, if any.
// It reports whether a job ran.
func (sim *Simulator) Tick() (bool, error) {
	j, ok := sim.Queue.PopMin()
	if !ok {
		return false, nil
	}
	return true, sim.execute(j)
}

// Drain runs quanta until the queue is empty.
func (sim *Simulator) Drain() error {
	for !sim.Queue.IsEmpty() {
		if _, err := sim.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// InsertJob creates a job with no work performed and adds it to both structures.
func (sim *Simulator) InsertJob(id int, total int64) error {
	if total < 0 {
		return fmt.Errorf("insert job %d: total time must be non-negative, got %d", id, total)
	}
	if sim.Index.Contains(id) {
		return fmt.Errorf("insert job %d: %w", id, ErrDuplicateJob)
	}
	j := NewJob(id, total, sim.Clock)
	sim.Queue.Push(j)
	sim.Index.Insert(j)
	sim.Metrics.JobsInserted++
	return nil
}

// execute grants one quantum to j, which has already been popped from the queue.
// A job that finishes leaves the index for good; any other job is requeued.
func (sim *Simulator) execute(j *Job) error {
	start := sim.Clock
	slice := j.Run(sim.Quantum)
	sim.Clock += slice
	sim.Metrics.QuantaExecuted++
	sim.Metrics.BusyTicks += slice
	sim.Trace.RecordQuantum(trace.QuantumRecord{
		JobID:    j.ID,
		Start:    start,
		Slice:    slice,
		Executed: j.ExecutedTime,
		Total:    j.TotalTime,
	})
	logrus.Debugf("[tick %07d] Job %d ran %d ticks (%d/%d)", sim.Clock, j.ID, slice, j.ExecutedTime, j.TotalTime)

	if !j.IsComplete() {
		sim.Queue.Push(j)
		return nil
	}

	sim.Index.Remove(j.ID)
	j.CompletionTime = sim.Clock
	sim.Metrics.JobsCompleted++
	sim.Metrics.TotalTurnaround += j.CompletionTime - j.ArrivalTime
	sim.Metrics.CompletionOrder = append(sim.Metrics.CompletionOrder, j.ID)
	sim.Trace.RecordCompletion(trace.CompletionRecord{
		JobID:   j.ID,
		Arrival: j.ArrivalTime,
		Clock:   j.CompletionTime,
		Total:   j.TotalTime,
		Quanta:  j.QuantaExecuted,
	})
	logrus.Infof("[tick %07d] Job %d completed", sim.Clock, j.ID)
	return sim.checkInvariants()
}

func (sim *Simulator) answer(time int64, query string, j *Job, ok bool) *Result {
	res := &Result{Time: time, Query: query, Jobs: make([]JobSnapshot, 0, 1)}
	if ok {
		res.Jobs = append(res.Jobs, j.Snapshot())
	}
	sim.Metrics.QueriesAnswered++
	return res
}

func (sim *Simulator) checkInvariants() error {
	if !sim.config.CheckInvariants {
		return nil
	}
	if err := sim.Index.Validate(); err != nil {
		return fmt.Errorf("[tick %d] %w: %v", sim.Clock, ErrInvariantViolation, err)
	}
	if sim.Index.Size() != sim.Queue.Len() {
		return fmt.Errorf("[tick %d] %w: index holds %d jobs, queue holds %d",
			sim.Clock, ErrInvariantViolation, sim.Index.Size(), sim.Queue.Len())
	}
	return nil
}
