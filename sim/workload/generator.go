package workload

import (
	"fmt"

	"github.com/rrsched/rrsched/sim"
)

const defaultRangeSpan = 10

// Generate creates a command sequence from a GeneratorSpec.
// Deterministic given the same spec: every Insert uses a distinct ID, and
// timestamps are non-decreasing. Each insert may be followed, at the same
// timestamp, by one query chosen uniformly among NextJob, PreviousJob and PrintJob.
func Generate(spec *GeneratorSpec) ([]sim.Command, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	rng := NewPartitionedRNG(spec.Seed)
	idRNG := rng.ForStream(streamIDs)
	arrivalRNG := rng.ForStream(streamArrivals)
	workRNG := rng.ForStream(streamWork)
	queryRNG := rng.ForStream(streamQueries)

	span := spec.MaxRangeSpan
	if span == 0 {
		span = defaultRangeSpan
	}

	ids := idRNG.Perm(spec.MaxID)[:spec.NumJobs]
	cmds := make([]sim.Command, 0, spec.NumJobs*2)
	var t int64
	for _, p := range ids {
		if spec.MeanInterarrival > 0 {
			t += arrivalRNG.Int63n(2*spec.MeanInterarrival + 1)
		}
		total := spec.TotalTime.Min + workRNG.Int63n(spec.TotalTime.Max-spec.TotalTime.Min+1)
		cmds = append(cmds, sim.NewInsertCommand(t, p+1, total))

		if queryRNG.Float64() >= spec.QueryRatio {
			continue
		}
		id := 1 + queryRNG.Intn(spec.MaxID)
		switch queryRNG.Intn(3) {
		case 0:
			cmds = append(cmds, sim.NewNextJobCommand(t, id))
		case 1:
			cmds = append(cmds, sim.NewPreviousJobCommand(t, id))
		default:
			cmds = append(cmds, sim.NewPrintJobCommand(t, id, id+queryRNG.Intn(span+1)))
		}
	}
	return cmds, nil
}
