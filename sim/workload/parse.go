package workload

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rrsched/rrsched/sim"
)

// commandLine matches "T: Name(args)" with optional whitespace between tokens.
var commandLine = regexp.MustCompile(`^\s*(\d+)\s*:\s*([A-Za-z]+)\s*\(([^()]*)\)\s*$`)

// ParseCommands reads one command per line from r.
// Blank lines are skipped. Timestamps must be non-decreasing.
// Errors name the 1-based line number of the offending line.
func ParseCommands(r io.Reader) ([]sim.Command, error) {
	cmds := make([]sim.Command, 0)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	var last int64
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(cmds) > 0 && cmd.Timestamp() < last {
			return nil, fmt.Errorf("line %d: timestamp %d precedes previous timestamp %d", lineNo, cmd.Timestamp(), last)
		}
		last = cmd.Timestamp()
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	return cmds, nil
}

// ParseCommand parses a single command line such as "12: PrintJob(3,9)".
func ParseCommand(line string) (sim.Command, error) {
	m := commandLine.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("malformed command %q", strings.TrimSpace(line))
	}
	t, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("timestamp %q: %w", m[1], err)
	}
	name := m[2]
	args, err := parseArgs(m[3])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	switch name {
	case "Insert":
		if len(args) != 2 {
			return nil, fmt.Errorf("Insert takes 2 arguments, got %d", len(args))
		}
		if args[0] <= 0 || args[1] <= 0 {
			return nil, fmt.Errorf("Insert(%d,%d): id and total time must be positive", args[0], args[1])
		}
		return sim.NewInsertCommand(t, int(args[0]), args[1]), nil
	case "NextJob":
		if len(args) != 1 {
			return nil, fmt.Errorf("NextJob takes 1 argument, got %d", len(args))
		}
		return sim.NewNextJobCommand(t, int(args[0])), nil
	case "PreviousJob":
		if len(args) != 1 {
			return nil, fmt.Errorf("PreviousJob takes 1 argument, got %d", len(args))
		}
		return sim.NewPreviousJobCommand(t, int(args[0])), nil
	case "PrintJob":
		switch len(args) {
		case 1:
			return sim.NewPrintJobCommand(t, int(args[0]), int(args[0])), nil
		case 2:
			return sim.NewPrintJobCommand(t, int(args[0]), int(args[1])), nil
		default:
			return nil, fmt.Errorf("PrintJob takes 1 or 2 arguments, got %d", len(args))
		}
	default:
		return nil, fmt.Errorf("unknown command %q; valid: Insert, NextJob, PreviousJob, PrintJob", name)
	}
}

func parseArgs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	args := make([]int64, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not an integer", i+1, f)
		}
		if v < 0 {
			return nil, fmt.Errorf("argument %d: %d must be non-negative", i+1, v)
		}
		args[i] = v
	}
	return args, nil
}

// FormatCommands writes cmds in the command-file format accepted by ParseCommands.
func FormatCommands(w io.Writer, cmds []sim.Command) error {
	bw := bufio.NewWriter(w)
	for _, c := range cmds {
		if _, err := fmt.Fprintln(bw, c.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
