package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rrsched/rrsched/sim"
	"github.com/rrsched/rrsched/sim/workload"
)

var (
	genSpecPath string
	genOutput   string
	genSeed     int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic command file from a YAML spec",
	Long:  "Generate a synthetic command file from a YAML generator spec. Output is written to stdout for piping unless --output is given.",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := workload.LoadGeneratorSpec(genSpecPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = genSeed
		}
		cmds, err := workload.Generate(spec)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		if err := writeCommands(genOutput, cmds); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Generated %d commands (seed=%d)", len(cmds), spec.Seed)
	},
}

// writeCommands writes cmds to path, or to stdout when path is empty.
func writeCommands(path string, cmds []sim.Command) error {
	if path == "" {
		return workload.FormatCommands(os.Stdout, cmds)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := workload.FormatCommands(f, cmds); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "Path to generator YAML spec")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "Path to write the command file (default stdout)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Override the spec's seed")
	_ = generateCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(generateCmd)
}
