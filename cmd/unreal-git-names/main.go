// Copyright 2026 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command unreal-git-names prints the stored actor or folder label for
// Unreal One File Per Actor packages, whose content-hash filenames are
// unreadable in git logs and diffs. It is built to sit behind a git
// textconv driver or commit hook, so misses are silent and the exit
// status stays zero unless the scan itself is interrupted.
//
// To make diffs readable, register it as a textconv driver:
//
//	# .gitattributes
//	*.uasset diff=uasset
//
//	# .git/config
//	[diff "uasset"]
//	    textconv = unreal-git-names --show-type
//	    binary = true
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"go-simpler.org/env"

	unrealnames "github.com/Jus2Cat/unreal-git-names"
	"github.com/Jus2Cat/unreal-git-names/internal/scan"
	"github.com/Jus2Cat/unreal-git-names/uasset"
)

type runArgs struct {
	Paths    []string `arg:"positional,required" help:"package files or directories to scan"`
	ShowPath bool     `arg:"-p,--show-path" help:"prefix each label with the absolute package path"`
	ShowType bool     `arg:"-t,--show-type" help:"show the label kind, e.g. [ActorLabel]"`
	Jobs     int      `arg:"-j,--jobs" help:"parallel workers (0 = all CPU cores)"`
	Policy   string   `arg:"--policy" default:"first" help:"which tag wins when a label repeats [first|last]"`
	NoDedup  bool     `arg:"--no-dedup" help:"parse byte-identical packages every time"`
	Stats    bool     `arg:"--stats" help:"print scan totals to stderr"`
	Verbose  bool     `arg:"-v,--verbose" help:"log skipped and unreadable files"`
	NoColor  bool     `arg:"--no-color" help:"disable colored output"`
}

func (runArgs) Description() string {
	return "Extract actor names from .uasset files."
}

func (runArgs) Version() string {
	return "unreal-git-names " + unrealnames.Version
}

// tuning carries the UGN_* environment variables. Flags win when both
// are set; the variables exist so hooks and textconv drivers can be
// tuned without editing .gitattributes.
type tuning struct {
	Jobs    int    `env:"UGN_JOBS" default:"0" usage:"parallel workers (0 = all CPU cores)"`
	Policy  string `env:"UGN_POLICY" default:"first" usage:"which tag wins when a label repeats [first|last]"`
	NoColor bool   `env:"UGN_NO_COLOR" default:"false" usage:"disable colored output"`
}

var kindTag = color.New(color.FgHiCyan)

func main() {
	if len(os.Args) == 2 && os.Args[1] == "env" {
		fmt.Println("environment variables that configure unreal-git-names:")
		fmt.Println()
		env.Usage(&tuning{}, os.Stdout, nil)
		os.Exit(0)
	}

	var args runArgs
	p := arg.MustParse(&args)

	var t tuning
	if err := env.Load(&t, nil); err != nil {
		p.Fail(err.Error())
	}
	if args.Jobs == 0 {
		args.Jobs = t.Jobs
	}
	if args.Policy == "first" {
		args.Policy = t.Policy
	}
	args.NoColor = args.NoColor || t.NoColor

	policy, err := tagPolicy(args.Policy)
	if err != nil {
		p.Fail(err.Error())
	}
	if args.NoColor {
		color.NoColor = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, args, policy); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func tagPolicy(name string) (uasset.TagPolicy, error) {
	switch strings.ToLower(name) {
	case "first":
		return uasset.FirstOccurrence, nil
	case "last":
		return uasset.LastOccurrence, nil
	}
	return 0, fmt.Errorf("unknown policy %q (want first or last)", name)
}

func run(ctx context.Context, args runArgs, policy uasset.TagPolicy) error {
	opts := []scan.Option{
		scan.WithWorkers(args.Jobs),
		scan.WithTagPolicy(policy),
		scan.WithDedup(!args.NoDedup),
	}
	if args.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, scan.WithLogger(logger))
	}
	scanner := scan.New(opts...)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var totals scan.Stats
	for _, root := range args.Paths {
		if _, err := os.Stat(root); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Path not found: %s\n", root)
			continue
		}
		stats, err := scanner.Scan(ctx, root, func(r scan.Result) {
			printResult(out, r, args.ShowPath, args.ShowType)
		})
		if err != nil {
			return err
		}
		totals = totals.Add(stats)
	}

	if args.Stats {
		fmt.Fprintf(os.Stderr, "Scanned %d files: %d labelled, %d unlabelled, %d reused, %d unreadable\n",
			totals.Files, totals.Matched, totals.Missed, totals.Reused, totals.Errors)
	}
	return nil
}

// printResult mirrors the classic hook output: one " | "-joined line per
// labelled package, nothing for misses, errors on stderr.
func printResult(out *bufio.Writer, r scan.Result, showPath, showType bool) {
	if r.Err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", r.Path, r.Err)
		return
	}
	if !r.Found {
		return
	}
	parts := make([]string, 0, 3)
	if showPath {
		abs, err := filepath.Abs(r.Path)
		if err != nil {
			abs = r.Path
		}
		parts = append(parts, abs)
	}
	if showType {
		parts = append(parts, kindTag.Sprintf("[%s]", r.Label.Kind))
	}
	parts = append(parts, r.Label.Text)
	fmt.Fprintln(out, strings.Join(parts, " | "))
}
