package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rrsched/rrsched/sim"
)

var batchOutDir string

// batchCmd replays every command file matched by the given globs.
var batchCmd = &cobra.Command{
	Use:   "batch <glob>...",
	Short: "Replay many command files, one output file each",
	Long:  "Replay every command file matched by the given patterns (\"**\" matches any number of directories). Results for input.txt go to input.txt.out, or into --out-dir.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, err := resolveRunConfig(cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		files, err := expandInputs(args)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if batchOutDir != "" {
			if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
				logrus.Fatalf("Failed to create output directory: %v", err)
			}
		}
		failed := runBatch(os.Stdout, files, batchOutDir, cfg)
		if failed > 0 {
			logrus.Fatalf("%d of %d command files failed", failed, len(files))
		}
	},
}

// expandInputs resolves each pattern against the filesystem and returns the
// matched regular files sorted and deduplicated.
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	files := make([]string, 0)
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no command files match %v", patterns)
	}
	sort.Strings(files)
	return files, nil
}

// batchOutputPath names the results file for one input.
func batchOutputPath(input, outDir string) string {
	name := filepath.Base(input) + ".out"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

// runBatch replays each file with its own simulator, prints one summary row
// per file and returns the number of files that failed.
func runBatch(w io.Writer, files []string, outDir string, cfg sim.Config) int {
	failed := 0
	fmt.Fprintf(w, "%-40s %8s %10s %10s\n", "FILE", "JOBS", "COMPLETED", "ENDED")
	for _, f := range files {
		s, err := replayFile(f, batchOutputPath(f, outDir), cfg)
		if err != nil {
			logrus.Errorf("%v", err)
			failed++
			continue
		}
		m := s.Metrics
		fmt.Fprintf(w, "%-40s %8d %10d %10d\n", f, m.JobsInserted, m.JobsCompleted, m.SimEndedTime)
	}
	return failed
}

func init() {
	addSchedulerFlags(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory for result files (default: next to each input)")

	rootCmd.AddCommand(batchCmd)
}
