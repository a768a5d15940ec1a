package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCompletions captures one record per completed job.
	TraceLevelCompletions TraceLevel = "completions"
	// TraceLevelQuanta captures every quantum granted, plus completions.
	TraceLevelQuanta TraceLevel = "quanta"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelCompletions: true,
	TraceLevelQuanta:      true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// ValidTraceLevelNames returns the accepted non-empty level names.
func ValidTraceLevelNames() []string {
	return []string{string(TraceLevelNone), string(TraceLevelCompletions), string(TraceLevelQuanta)}
}

// SimulationTrace collects scheduling records during a run.
type SimulationTrace struct {
	Level       TraceLevel
	RunID       string
	Quanta      []QuantumRecord
	Completions []CompletionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel, runID string) *SimulationTrace {
	if level == "" {
		level = TraceLevelNone
	}
	return &SimulationTrace{
		Level:       level,
		RunID:       runID,
		Quanta:      make([]QuantumRecord, 0),
		Completions: make([]CompletionRecord, 0),
	}
}

// RecordQuantum appends a quantum record. No-op below TraceLevelQuanta.
func (st *SimulationTrace) RecordQuantum(record QuantumRecord) {
	if st.Level != TraceLevelQuanta {
		return
	}
	st.Quanta = append(st.Quanta, record)
}

// RecordCompletion appends a completion record. No-op at TraceLevelNone.
func (st *SimulationTrace) RecordCompletion(record CompletionRecord) {
	if st.Level != TraceLevelCompletions && st.Level != TraceLevelQuanta {
		return
	}
	st.Completions = append(st.Completions, record)
}
