package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalQuanta     int
	CompletedJobs   int
	BusyTicks       int64
	MeanTurnaround  float64
	MaxTurnaround   int64
	QuantaPerJob    map[int]int // job ID → quanta granted (from quantum records)
	CompletionOrder []int       // job IDs in completion order
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		QuantaPerJob:    make(map[int]int),
		CompletionOrder: make([]int, 0),
	}
	if st == nil {
		return summary
	}

	summary.TotalQuanta = len(st.Quanta)
	for _, q := range st.Quanta {
		summary.QuantaPerJob[q.JobID]++
		summary.BusyTicks += q.Slice
	}

	summary.CompletedJobs = len(st.Completions)
	if len(st.Completions) > 0 {
		var total int64
		for _, c := range st.Completions {
			summary.CompletionOrder = append(summary.CompletionOrder, c.JobID)
			ta := c.Turnaround()
			total += ta
			if ta > summary.MaxTurnaround {
				summary.MaxTurnaround = ta
			}
		}
		summary.MeanTurnaround = float64(total) / float64(len(st.Completions))
	}

	return summary
}
