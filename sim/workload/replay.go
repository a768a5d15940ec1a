package workload

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rrsched/rrsched/sim"
)

// LoadCommands reads and parses a command file for replay through the simulator.
func LoadCommands(path string) ([]sim.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening command file: %w", err)
	}
	defer f.Close()

	cmds, err := ParseCommands(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("Loaded %d commands from %s", len(cmds), path)
	return cmds, nil
}
