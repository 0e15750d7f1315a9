// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	"github.com/xyproto/env/v2"

	"tacopt/grammar"
	"tacopt/internal/codegen"
	"tacopt/internal/optimizer"
	"tacopt/internal/tac"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tacopt <file.tac>")
		os.Exit(1)
	}
	path := os.Args[1]

	// NO_COLOR disables color when set to any non-empty value
	if env.Str("NO_COLOR") != "" {
		color.NoColor = true
	}
	verbosity := 0
	if env.Bool("TACOPT_VERBOSE") {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	program, err := grammar.ParseSource(path, string(source))
	if err != nil {
		grammar.ReportParseError(string(source), err)
		color.Red("Compilation failed")
		os.Exit(1)
	}

	input := codegen.NewBuilder().Build(program)

	fmt.Println("Input:")
	fmt.Print(tac.Format(input))

	if env.Bool("TACOPT_NO_OPT") {
		return
	}

	optimized, stats := optimizer.NewPipeline().Run(input)

	fmt.Println()
	fmt.Println("Optimized:")
	fmt.Print(tac.Format(optimized))
	fmt.Println()

	color.Green("%d -> %d instructions (%.1f%% reduction) in %s",
		stats.OriginalCount, stats.OptimizedCount, stats.ReductionPercent, formatDuration(stats.Elapsed))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
