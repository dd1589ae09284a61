// Package clangdump spawns the external C++ front-end and delivers its
// output as a stream of lines. It does not interpret the dump in any way;
// that is internal/astdump's job.
package clangdump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Mode selects which of the two front-end invocations to make.
type Mode int

const (
	AstDump Mode = iota
	HeaderList
)

// MaxLineLen is the hard per-line upper bound. Lines longer than this are
// truncated rather than aborting the run.
const MaxLineLen = 16 * 1024

// SpawnError wraps a failure to start the front-end process.
type SpawnError struct {
	Unit string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn front-end for %s: %v", e.Unit, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Driver spawns the external compiler front-end. Command defaults to
// "clang++" when empty.
type Driver struct {
	Command string
	Logger  *log.Logger
}

func (d *Driver) command() string {
	if d.Command != "" {
		return d.Command
	}
	return "clang++"
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// args builds the flag list for the requested mode, per spec.md §6's
// external process interface.
func (d *Driver) args(unit string, includeDirs []string, mode Mode) []string {
	args := []string{"-std=c++20"}
	switch mode {
	case AstDump:
		args = append(args, "-Xclang", "-ast-dump", "-fsyntax-only", "-fno-color-diagnostics")
	case HeaderList:
		args = append(args, "-M")
	}
	for _, dir := range includeDirs {
		args = append(args, "-I", dir)
	}
	args = append(args, unit)
	return args
}

// Run spawns the front-end for unit in the given mode and calls handler
// once per line of stdout, trailing newline removed, truncated to
// MaxLineLen. stderr is discarded. A nonzero exit is tolerated: the partial
// dump may still be useful, so Run does not report it as an error. Only a
// failure to start the process is reported, as *SpawnError.
func (d *Driver) Run(ctx context.Context, unit string, includeDirs []string, mode Mode, handler func(string)) error {
	cmd := exec.CommandContext(ctx, d.command(), d.args(unit, includeDirs, mode)...)
	cmd.Stderr = nil // discarded: os/exec leaves stderr unset as the platform null sink equivalent for our purposes
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SpawnError{Unit: unit, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &SpawnError{Unit: unit, Err: err}
	}

	// The reader's buffer is MaxLineLen bytes, so ReadLine never returns more
	// than that; the rest of an overlong line is read and dropped.
	reader := bufio.NewReaderSize(stdout, MaxLineLen)
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err != io.EOF {
				d.logger().Warn("front-end output scan error", "unit", unit, "err", err)
			}
			break
		}
		line := string(chunk)
		for isPrefix && err == nil {
			_, isPrefix, err = reader.ReadLine()
		}
		handler(line)
	}

	// A nonzero exit is tolerated per spec: the dump already delivered is
	// still handed to the caller.
	_ = cmd.Wait()
	return nil
}

// ParseHeaderList interprets HeaderList-mode output: a make-rule of the form
// "<target>.o: <dep> <dep> ... \\\n<dep> ...". The first token (the .o:
// target) is discarded; the remainder is split on newlines and embedded
// spaces; trailing line-continuation backslashes are stripped. A referenced
// path that does not exist on disk is logged and skipped.
func (d *Driver) ParseHeaderList(lines []string) []string {
	joined := strings.Join(lines, "\n")
	fields := strings.Fields(joined)
	if len(fields) == 0 {
		return nil
	}
	fields = fields[1:] // discard the ".o:" target token

	var out []string
	for _, f := range fields {
		f = strings.TrimSuffix(f, "\\")
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			d.logger().Debug("header does not exist, skipping", "path", f)
			continue
		}
		out = append(out, f)
	}
	return out
}
