// Command autoreflectgen is the CLI surface for the Build Driver: it wires
// -M/-I/-S and positional unit paths (spec.md §6) into internal/build.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bennywwg/autoreflect/internal/build"
	"github.com/bennywwg/autoreflect/internal/clangdump"
	"github.com/charmbracelet/log"
)

// includeDirs collects repeatable -I flags; flag.FlagSet has no built-in
// repeatable-string-flag type, so this is the one idiom the teacher's CLI
// (cmd/graftgen) didn't need.
type includeDirs []string

func (d *includeDirs) String() string {
	if d == nil {
		return ""
	}
	return strings.Join(*d, ",")
}

func (d *includeDirs) Set(value string) error {
	*d = append(*d, value)
	return nil
}

func main() {
	var mainImpl string
	var dirs includeDirs
	var silent bool
	fs := flag.NewFlagSet("autoreflectgen", flag.ContinueOnError)
	fs.StringVar(&mainImpl, "M", "", "main-impl source whose generated output will be <path>.gen.inl (required)")
	fs.Var(&dirs, "I", "additional include directory, repeatable")
	fs.BoolVar(&silent, "S", false, "silent mode: suppress per-unit progress logs")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -M <main-impl> [-I dir]... [-S] [unit ...]\n", os.Args[0])
		fs.PrintDefaults()
	}
	positionals := parseKnownFlags(fs, os.Args[1:])

	if mainImpl == "" {
		fmt.Fprintln(os.Stderr, "autoreflectgen: -M is required")
		fs.Usage()
		os.Exit(1)
	}

	logger := log.New(os.Stderr)
	if silent {
		logger.SetLevel(log.WarnLevel)
	}

	units := filterUnits(positionals)

	driver := &build.Driver{
		Dump:   &clangdump.Driver{Logger: logger},
		Logger: logger,
	}
	cfg := build.Config{
		IncludeDirs:  dirs,
		FilesToParse: units,
		MainImplPath: mainImpl,
		Silent:       silent,
	}

	result, err := driver.Run(context.Background(), cfg)
	if err != nil {
		logger.Error("build failed", "err", err)
		// Exit code is still 0 on any completion per spec.md §6: only a
		// missing -M is fatal with nonzero exit.
		return
	}

	for unit, errs := range result.UnitErrors {
		for _, e := range errs {
			logger.Error("unit error", "unit", unit, "err", e)
		}
	}
	for _, c := range result.ConflictErrors {
		logger.Warn("conflicting definition", "type", c)
	}
}

// parseKnownFlags parses args against fs, feeding any flag the FlagSet
// doesn't recognize back in as a positional input instead of letting
// ContinueOnError's default reporting stop the run: spec.md §6 requires
// unknown flags to be treated as positional inputs and exit 0 on any
// completion past a present -M. A flag-value error (e.g. -M with no
// argument) is recovered the same way, since the FlagSet can't tell the
// two cases apart once parsing has stopped at that token.
func parseKnownFlags(fs *flag.FlagSet, args []string) []string {
	fs.SetOutput(io.Discard)
	defer fs.SetOutput(os.Stderr)

	var positionals []string
	for {
		before := len(args)
		err := fs.Parse(args)
		remaining := fs.Args()
		if err == nil {
			return append(positionals, remaining...)
		}
		idx := before - len(remaining) - 1
		if idx < 0 || idx >= before {
			return append(positionals, remaining...)
		}
		positionals = append(positionals, args[idx])
		args = remaining
	}
}

// filterUnits implements spec.md §6's positional-input filter: each
// candidate file is scanned line-by-line for the substring ".gen.inl";
// only files that reference the generated suffix participate.
func filterUnits(candidates []string) []string {
	var out []string
	for _, path := range candidates {
		if referencesGenSuffix(path) {
			out = append(out, path)
		}
	}
	return out
}

func referencesGenSuffix(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), build.GenSuffix) {
			return true
		}
	}
	return false
}
