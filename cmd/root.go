package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rrsched/rrsched/sim"
	"github.com/rrsched/rrsched/sim/trace"
	"github.com/rrsched/rrsched/sim/workload"
)

var (
	// CLI flags shared by run and batch
	logLevel        string // Log verbosity level
	configPath      string // Optional YAML defaults file
	quantum         int64  // Ticks granted per scheduling decision
	drain           bool   // Run the queue dry after the last command
	checkInvariants bool   // Validate the job index after every mutation
	traceLevel      string // Decision trace verbosity

	// CLI flags for run
	inputPath    string // Command file to replay
	outputPath   string // Query results destination
	summaryPath  string // Metrics JSON destination ("" = none)
	printMetrics bool   // Print the metrics block to stdout
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rrsched",
	Short: "Preemptive round-robin job scheduler simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd replays one command file and writes the query results
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a command file through the scheduler",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, out, err := resolveRunConfig(cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation: input=%s, output=%s, quantum=%d, drain=%v",
			inputPath, out, cfg.Quantum, cfg.Drain)

		s, err := replayFile(inputPath, out, cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if printMetrics {
			s.Metrics.Print(os.Stdout)
		}
		if s.Trace.Level != trace.TraceLevelNone {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}
		if summaryPath != "" {
			if err := s.Metrics.SaveResults(summaryPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveRunConfig builds the run configuration from the flag values,
// letting the --config file fill in every flag the user did not set.
func resolveRunConfig(changed func(name string) bool) (sim.Config, string, error) {
	cfg := sim.NewConfig(quantum, drain, checkInvariants, trace.TraceLevel(traceLevel))
	out := outputPath
	if configPath != "" {
		fc, err := loadFileConfig(configPath)
		if err != nil {
			return cfg, out, err
		}
		fc.applyTo(&cfg, &out, changed)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, out, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, out, nil
}

// replayFile runs the commands in inPath and writes the query results to outPath.
func replayFile(inPath, outPath string, cfg sim.Config) (*sim.Simulator, error) {
	cmds, err := workload.LoadCommands(inPath)
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	results, err := s.Run(cmds)
	if err != nil {
		return s, fmt.Errorf("%s: %w", inPath, err)
	}
	if err := workload.WriteResultsFile(outPath, results); err != nil {
		return s, err
	}
	logrus.Infof("Wrote %d results to %s", len(results), outPath)
	return s, nil
}

func printTraceSummary(w io.Writer, sum *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Quanta Recorded   : %d\n", sum.TotalQuanta)
	fmt.Fprintf(w, "Completed Jobs    : %d\n", sum.CompletedJobs)
	if sum.CompletedJobs > 0 {
		fmt.Fprintf(w, "Mean Turnaround   : %.2f ticks\n", sum.MeanTurnaround)
		fmt.Fprintf(w, "Max Turnaround    : %d ticks\n", sum.MaxTurnaround)
	}
	if len(sum.QuantaPerJob) == 0 {
		return
	}
	ids := make([]int, 0, len(sum.QuantaPerJob))
	for id := range sum.QuantaPerJob {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fmt.Fprintln(w, "Quanta Per Job    :")
	for _, id := range ids {
		fmt.Fprintf(w, "  job %d: %d\n", id, sum.QuantaPerJob[id])
	}
}

// addSchedulerFlags registers the flags that shape a scheduler run.
func addSchedulerFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "Path to a YAML defaults file (explicit flags take precedence)")
	c.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Ticks granted per scheduling decision")
	c.Flags().BoolVar(&drain, "drain", false, "Run remaining jobs to completion after the last command")
	c.Flags().BoolVar(&checkInvariants, "check-invariants", false, "Validate the job index after every mutation")
	c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, completions, quanta)")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addSchedulerFlags(runCmd)
	runCmd.Flags().StringVar(&inputPath, "input", "", "Path to the command file")
	runCmd.Flags().StringVar(&outputPath, "output", workload.DefaultOutputPath, "Path to write query results")
	runCmd.Flags().StringVar(&summaryPath, "summary", "", "Path to write run metrics as JSON")
	runCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print run metrics to stdout")
	_ = runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}
