package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GeneratorSpec is the top-level synthetic workload configuration.
// Loaded from YAML via LoadGeneratorSpec(path).
type GeneratorSpec struct {
	Version          string    `yaml:"version"`
	Seed             int64     `yaml:"seed"`
	NumJobs          int       `yaml:"num_jobs"`
	MaxID            int       `yaml:"max_id"`            // job IDs are drawn from [1, max_id]
	TotalTime        RangeSpec `yaml:"total_time"`        // per-job work, inclusive bounds
	MeanInterarrival int64     `yaml:"mean_interarrival"` // mean ticks between inserts (uniform on [0, 2*mean])
	QueryRatio       float64   `yaml:"query_ratio"`       // probability of a query after each insert
	MaxRangeSpan     int       `yaml:"max_range_span,omitempty"`
}

// RangeSpec is an inclusive integer interval.
type RangeSpec struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *GeneratorSpec) Validate() error {
	if s.NumJobs <= 0 {
		return fmt.Errorf("num_jobs must be positive, got %d", s.NumJobs)
	}
	if s.MaxID < s.NumJobs {
		return fmt.Errorf("max_id (%d) must be at least num_jobs (%d) so IDs stay unique", s.MaxID, s.NumJobs)
	}
	if s.TotalTime.Min <= 0 {
		return fmt.Errorf("total_time.min must be positive, got %d", s.TotalTime.Min)
	}
	if s.TotalTime.Max < s.TotalTime.Min {
		return fmt.Errorf("total_time.max (%d) must be at least total_time.min (%d)", s.TotalTime.Max, s.TotalTime.Min)
	}
	if s.MeanInterarrival < 0 {
		return fmt.Errorf("mean_interarrival must be non-negative, got %d", s.MeanInterarrival)
	}
	if s.QueryRatio < 0 || s.QueryRatio > 1 {
		return fmt.Errorf("query_ratio must be in [0, 1], got %f", s.QueryRatio)
	}
	if s.MaxRangeSpan < 0 {
		return fmt.Errorf("max_range_span must be non-negative, got %d", s.MaxRangeSpan)
	}
	return nil
}
