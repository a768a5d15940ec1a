package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rrsched/rrsched/sim"
)

// DefaultOutputPath is where query results are written when no path is given.
const DefaultOutputPath = "output_file.txt"

// WriteResults writes one line per query result, in order.
func WriteResults(w io.Writer, results []sim.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintln(bw, r.String()); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	return bw.Flush()
}

// WriteResultsFile writes the results to path, replacing any existing file.
func WriteResultsFile(path string, results []sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := WriteResults(f, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	logrus.Infof("Wrote %d results to %s", len(results), path)
	return nil
}
