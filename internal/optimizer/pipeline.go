package optimizer

import (
	"time"

	"tacopt/internal/tac"
)

// Stats describes one pipeline run. Elapsed carries the exact wall-clock
// duration; ElapsedMS is its millisecond rendering for reporting.
type Stats struct {
	OriginalCount    int
	OptimizedCount   int
	ReductionPercent float64
	Elapsed          time.Duration
	ElapsedMS        float64
}

// Pipeline runs a fixed schedule of rewrite passes. The schedule is not a
// fixed-point iteration: it executes exactly once, with constant folding
// and peephole repeated at the end to catch opportunities the structural
// passes expose. Each NewPipeline call builds fresh pass state, so nothing
// leaks between independent optimization runs.
type Pipeline struct {
	passes []Pass
}

// NewPipeline creates the default pipeline with the standard pass order.
func NewPipeline() *Pipeline {
	p := &Pipeline{}

	p.AddPass(&ConstantFolding{})
	p.AddPass(&Peephole{})
	p.AddPass(&CopyPropagation{})
	p.AddPass(&CommonSubexpressionElimination{})
	p.AddPass(&StrengthReduction{})
	p.AddPass(&LoopInvariantMotion{})
	p.AddPass(&RedundantAssignElimination{})
	p.AddPass(&DeadCodeElimination{})
	// Second round: structural passes above leave fresh literal operands
	// and identities behind.
	p.AddPass(&ConstantFolding{})
	p.AddPass(&Peephole{})

	return p
}

// AddPass appends a pass to the schedule.
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Run executes the schedule on program and returns the optimized program
// with before/after statistics. The input program is consumed.
func (p *Pipeline) Run(program tac.Program) (tac.Program, Stats) {
	start := time.Now()
	original := len(program)

	for _, pass := range p.passes {
		before := len(program)
		program = pass.Apply(program)
		log.Debugf("%s: %d -> %d instructions", pass.Name(), before, len(program))
	}

	elapsed := time.Since(start)
	stats := Stats{
		OriginalCount:  original,
		OptimizedCount: len(program),
		Elapsed:        elapsed,
		ElapsedMS:      float64(elapsed.Nanoseconds()) / 1e6,
	}
	if original > 0 {
		stats.ReductionPercent = float64(original-len(program)) / float64(original) * 100
	}
	return program, stats
}
