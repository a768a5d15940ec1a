package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrsched/rrsched/sim/trace"
)

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CheckInvariants = true
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	return s
}

func resultStrings(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.String()
	}
	return out
}

// randomCommands builds a valid command sequence: unique insert IDs,
// non-decreasing timestamps and a mix of the three query kinds.
func randomCommands(rng *rand.Rand, n int) []Command {
	cmds := make([]Command, 0, n)
	ids := rng.Perm(4 * n)
	var now int64
	next := 0
	for i := 0; i < n; i++ {
		now += int64(rng.Intn(8))
		probe := 1 + rng.Intn(4*n)
		switch rng.Intn(5) {
		case 0, 1:
			cmds = append(cmds, NewInsertCommand(now, ids[next]+1, int64(1+rng.Intn(30))))
			next++
		case 2:
			cmds = append(cmds, NewNextJobCommand(now, probe))
		case 3:
			cmds = append(cmds, NewPreviousJobCommand(now, probe))
		default:
			cmds = append(cmds, NewPrintJobCommand(now, probe, probe+rng.Intn(20)))
		}
	}
	return cmds
}

func TestNewSimulator_InvalidConfig_ReturnsError(t *testing.T) {
	_, err := NewSimulator(Config{Quantum: 0})
	assert.Error(t, err)
}

func TestNewSimulator_FreshState(t *testing.T) {
	// GIVEN two simulators
	s1 := newTestSimulator(t)
	s2 := newTestSimulator(t)

	// WHEN only the first receives a job
	require.NoError(t, s1.InsertJob(1, 10))

	// THEN the second owns independent, empty structures with its own run ID
	assert.Equal(t, int64(0), s2.Clock)
	assert.True(t, s2.Queue.IsEmpty())
	assert.Equal(t, 0, s2.Index.Size())
	assert.NotEqual(t, s1.Metrics.RunID, s2.Metrics.RunID)
}

func TestSimulator_Apply_BeforeAnyQuantum_ShowsZeroExecutedTime(t *testing.T) {
	// GIVEN two jobs inserted at time 0 with no quantum run yet
	s := newTestSimulator(t)
	_, err := s.Apply(NewInsertCommand(0, 1, 10))
	require.NoError(t, err)
	_, err = s.Apply(NewInsertCommand(0, 2, 10))
	require.NoError(t, err)

	// WHEN PrintJob(1,2) is applied
	res, err := s.Apply(NewPrintJobCommand(0, 1, 2))

	// THEN both jobs report no work performed
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "(1,0,10),(2,0,10)", res.String())
}

func TestSimulator_Run_TwoJobsAlternateAndComplete(t *testing.T) {
	// GIVEN two 10-tick jobs inserted at time 0
	s := newTestSimulator(t)
	cmds := []Command{
		NewInsertCommand(0, 1, 10),
		NewInsertCommand(0, 2, 10),
		NewPrintJobCommand(0, 1, 2),
		NewPrintJobCommand(20, 1, 2),
	}

	// WHEN the commands run, each followed by one quantum
	results, err := s.Run(cmds)

	// THEN each job got one quantum before the first print and both are gone by time 20
	require.NoError(t, err)
	assert.Equal(t, []string{"(1,5,10),(2,5,10)", "(0,0,0)"}, resultStrings(results))
	assert.Equal(t, int64(20), s.Clock)
	assert.Equal(t, 0, s.Index.Size())
	assert.True(t, s.Queue.IsEmpty())
	assert.Equal(t, []int{1, 2}, s.Metrics.CompletionOrder)
}

func TestSimulator_Run_SingleJob_HasNoNeighbors(t *testing.T) {
	s := newTestSimulator(t)
	results, err := s.Run([]Command{
		NewInsertCommand(0, 5, 3),
		NewNextJobCommand(0, 5),
		NewPreviousJobCommand(0, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"(0,0,0)", "(0,0,0)"}, resultStrings(results))
}

func TestSimulator_Insert_ProducesNoResult(t *testing.T) {
	s := newTestSimulator(t)
	res, err := s.Handle(NewInsertCommand(0, 1, 10))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSimulator_AdvanceTo_EmptyQueue_IdlesToTimestamp(t *testing.T) {
	// GIVEN a job that finishes at tick 5
	s := newTestSimulator(t)
	_, err := s.Handle(NewInsertCommand(0, 1, 5))
	require.NoError(t, err)
	require.Equal(t, int64(5), s.Clock)

	// WHEN the next command arrives at tick 100
	res, err := s.Handle(NewNextJobCommand(100, 0))

	// THEN the clock jumps to 100 and the gap is counted as idle
	require.NoError(t, err)
	assert.Equal(t, "(0,0,0)", res.String())
	assert.Equal(t, int64(100), s.Clock)
	assert.Equal(t, int64(95), s.Metrics.IdleTicks)
	assert.Equal(t, int64(5), s.Metrics.BusyTicks)
}

func TestSimulator_AdvanceTo_ClockAheadOfCommand_DoesNotRewind(t *testing.T) {
	// GIVEN a clock already at 5 after the first command's quantum
	s := newTestSimulator(t)
	_, err := s.Handle(NewInsertCommand(0, 1, 20))
	require.NoError(t, err)

	// WHEN a command stamped at 2 arrives
	_, err = s.Handle(NewPrintJobCommand(2, 1, 1))

	// THEN the clock is not moved back; only the post-command quantum advances it
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Clock)
}

func TestSimulator_Fairness_EqualJobsCompleteAfterCeilQuanta(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		total int64
	}{
		{"exact multiple", 3, 15},
		{"partial final quantum", 4, 12},
		{"single tick", 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN N jobs of equal length inserted at the same instant
			s := newTestSimulator(t)
			jobs := make([]*Job, 0, tt.n)
			for id := 1; id <= tt.n; id++ {
				require.NoError(t, s.InsertJob(id, tt.total))
				j, _ := s.Index.Search(id)
				jobs = append(jobs, j)
			}

			// WHEN the queue is drained
			require.NoError(t, s.Drain())

			// THEN each job got ceil(T/5) quanta and the clock advanced by the total work
			wantQuanta := int((tt.total + DefaultQuantum - 1) / DefaultQuantum)
			for _, j := range jobs {
				assert.Equal(t, wantQuanta, j.QuantaExecuted, "job %d", j.ID)
				assert.True(t, j.IsComplete())
			}
			assert.Equal(t, int64(tt.n)*tt.total, s.Clock)
			assert.Equal(t, tt.n*wantQuanta, s.Metrics.QuantaExecuted)

			// THEN equal jobs finish in ID order
			want := make([]int, tt.n)
			for i := range want {
				want[i] = i + 1
			}
			assert.Equal(t, want, s.Metrics.CompletionOrder)
		})
	}
}

func TestSimulator_Handle_TimeRegression_ReturnsError(t *testing.T) {
	s := newTestSimulator(t)
	_, err := s.Handle(NewInsertCommand(10, 1, 50))
	require.NoError(t, err)

	_, err = s.Handle(NewNextJobCommand(5, 1))

	assert.True(t, errors.Is(err, ErrTimeRegression), "got %v", err)
}

func TestSimulator_Handle_DuplicateLiveID_ReturnsError(t *testing.T) {
	s := newTestSimulator(t)
	_, err := s.Handle(NewInsertCommand(0, 1, 50))
	require.NoError(t, err)

	_, err = s.Handle(NewInsertCommand(0, 1, 50))

	assert.True(t, errors.Is(err, ErrDuplicateJob), "got %v", err)
	assert.Equal(t, 1, s.Index.Size())
}

func TestSimulator_Insert_CompletedIDMayBeReused(t *testing.T) {
	// GIVEN job 1 which completes within its first quantum
	s := newTestSimulator(t)
	_, err := s.Handle(NewInsertCommand(0, 1, 3))
	require.NoError(t, err)
	require.False(t, s.Index.Contains(1))

	// WHEN the ID is inserted again
	_, err = s.Handle(NewInsertCommand(10, 1, 3))

	// THEN it is accepted as a new job
	assert.NoError(t, err)
}

func TestSimulator_Drain_ConfigRunsQueueDry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drain = true
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	_, err = s.Run([]Command{NewInsertCommand(0, 1, 23), NewInsertCommand(0, 2, 7)})

	require.NoError(t, err)
	assert.True(t, s.Queue.IsEmpty())
	assert.Equal(t, int64(30), s.Clock)
	assert.Equal(t, int64(30), s.Metrics.SimEndedTime)
	assert.Equal(t, []int{2, 1}, s.Metrics.CompletionOrder)
}

func TestSimulator_Trace_RecordsQuantaAndCompletions(t *testing.T) {
	// GIVEN a simulator tracing at quanta level
	cfg := DefaultConfig()
	cfg.TraceLevel = trace.TraceLevelQuanta
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	// WHEN one 12-tick job runs to completion
	require.NoError(t, s.InsertJob(4, 12))
	require.NoError(t, s.Drain())

	// THEN the trace holds three quanta (5, 5, 2) and one completion
	require.Len(t, s.Trace.Quanta, 3)
	assert.Equal(t, []int64{5, 5, 2}, []int64{s.Trace.Quanta[0].Slice, s.Trace.Quanta[1].Slice, s.Trace.Quanta[2].Slice})
	assert.Equal(t, int64(10), s.Trace.Quanta[2].Start)
	require.Len(t, s.Trace.Completions, 1)
	assert.Equal(t, 4, s.Trace.Completions[0].JobID)
	assert.Equal(t, int64(12), s.Trace.Completions[0].Clock)
	assert.Equal(t, 3, s.Trace.Completions[0].Quanta)
	assert.Equal(t, s.Metrics.RunID, s.Trace.RunID)
}

func TestSimulator_RandomWorkload_SizeTracksInsertedMinusCompleted(t *testing.T) {
	// GIVEN a random valid workload and invariant checking after every mutation
	rng := rand.New(rand.NewSource(7))
	cmds := randomCommands(rng, 1500)
	s := newTestSimulator(t)

	for i, cmd := range cmds {
		// WHEN each command is handled
		_, err := s.Handle(cmd)
		require.NoError(t, err, "command %d: %s", i, cmd)

		// THEN both structures hold exactly the live jobs
		live := s.Metrics.JobsInserted - s.Metrics.JobsCompleted
		require.Equal(t, live, s.Index.Size(), "command %d", i)
		require.Equal(t, live, s.Queue.Len(), "command %d", i)
	}
	require.NoError(t, s.Drain())
	assert.Equal(t, 0, s.Index.Size())
	assert.Equal(t, s.Metrics.JobsInserted, s.Metrics.JobsCompleted)
	assert.Equal(t, s.Metrics.BusyTicks+s.Metrics.IdleTicks, s.Clock)
}

func TestSimulator_Determinism_IdenticalInputsIdenticalOutputs(t *testing.T) {
	run := func() ([]string, []int, int64) {
		cmds := randomCommands(rand.New(rand.NewSource(99)), 800)
		s := newTestSimulator(t)
		results, err := s.Run(cmds)
		require.NoError(t, err)
		return resultStrings(results), s.Metrics.CompletionOrder, s.Clock
	}

	r1, o1, c1 := run()
	r2, o2, c2 := run()

	assert.Equal(t, r1, r2)
	assert.Equal(t, o1, o2)
	assert.Equal(t, c1, c2)
}
