// Copyright 2026 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command uasset-bench times label extraction over a tree of .uasset
// packages. It exists to keep the parser honest on real project data:
// point it at a Content directory and compare runs across versions.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"

	unrealnames "github.com/Jus2Cat/unreal-git-names"
	"github.com/Jus2Cat/unreal-git-names/internal/scan"
)

type runArgs struct {
	Path      string `arg:"positional" default:"." help:"directory to search for .uasset files"`
	Runs      int    `arg:"--runs" default:"3" help:"number of measured runs"`
	Warmup    int    `arg:"--warmup" default:"1" help:"number of warmup runs"`
	NoGC      bool   `arg:"--no-gc" help:"disable the garbage collector during timing"`
	NoRecurse bool   `arg:"--no-recurse" help:"do not search recursively"`
	Jobs      int    `arg:"-j,--jobs" help:"time the parallel scanner with this many workers instead of the serial loop"`
	Profile   string `arg:"--profile" help:"write a cpu or mem profile to the current directory"`
}

func (runArgs) Description() string {
	return "Benchmark actor label extraction performance."
}

func (runArgs) Version() string {
	return "uasset-bench " + unrealnames.Version
}

func main() {
	var args runArgs
	p := arg.MustParse(&args)
	if args.Runs < 1 {
		p.Fail("--runs must be >= 1")
	}
	if args.Warmup < 0 {
		p.Fail("--warmup must be >= 0")
	}
	prof := strings.ToLower(args.Profile)
	if prof != "" && prof != "cpu" && prof != "mem" {
		p.Fail(fmt.Sprintf("unknown profile %q (want cpu or mem)", args.Profile))
	}

	root, err := filepath.Abs(args.Path)
	if err != nil {
		p.Fail(err.Error())
	}

	files, err := collectFiles(root, !args.NoRecurse)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No .uasset files found.")
		return
	}
	fmt.Printf("Found %d files. Starting benchmark...\n", len(files))

	switch prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	workload := func() {
		for _, f := range files {
			_, _, _ = unrealnames.ExtractFile(f)
		}
	}
	if args.Jobs > 0 {
		scanner := scan.New(scan.WithWorkers(args.Jobs))
		workload = func() {
			_, _ = scanner.Scan(context.Background(), root, func(scan.Result) {})
		}
	}

	timings := timeRuns(workload, args.Runs, args.Warmup, args.NoGC)
	fmt.Println(formatStats(timings, len(files)))
}

func collectFiles(root string, recurse bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		fmt.Printf("Benchmarking single file: %s\n", root)
		return []string{root}, nil
	}

	fmt.Printf("Scanning for .uasset files in: %s...\n", root)
	var files []string
	if !recurse {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && isAsset(e.Name()) {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
		return files, nil
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isAsset(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func isAsset(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".uasset")
}

func timeRuns(workload func(), runs, warmup int, disableGC bool) []float64 {
	if disableGC {
		old := debug.SetGCPercent(-1)
		defer debug.SetGCPercent(old)
	}
	for range warmup {
		workload()
	}
	timings := make([]float64, 0, runs)
	for range runs {
		start := time.Now()
		workload()
		timings = append(timings, float64(time.Since(start).Nanoseconds())/1e6)
	}
	return timings
}

func formatStats(timings []float64, files int) string {
	sorted := slices.Clone(timings)
	slices.Sort(sorted)

	var sum float64
	for _, v := range timings {
		sum += v
	}
	avg := sum / float64(len(timings))
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	perFile := 0.0
	if files > 0 {
		perFile = avg / float64(files)
	}
	return fmt.Sprintf(
		"Benchmark (ms): runs=%d files_per_run=%d\n"+
			"  Total Time: min=%.3f avg=%.3f median=%.3f max=%.3f\n"+
			"  Per File:   avg=%.3f",
		len(timings), files, sorted[0], avg, median, sorted[len(sorted)-1], perFile)
}
