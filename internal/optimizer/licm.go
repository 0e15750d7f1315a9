package optimizer

import (
	"sort"

	"tacopt/internal/tac"
)

// loopRegion is a paired loop-start/loop-end marker span, by position.
type loopRegion struct {
	start int
	end   int
}

// LoopInvariantMotion hoists computations out of marker-delimited loop
// regions. A "for" or "while" marker opens a region, "endloop" closes it;
// if the counts do not balance the pass leaves the program alone. An
// instruction qualifies as invariant only on its shape: a binary operation
// whose operands are literals or constant-by-convention variables (names
// written entirely in uppercase). No use-def analysis is done inside the
// loop body; this is a heuristic, not a CFG-based hoist.
type LoopInvariantMotion struct{}

func (lm *LoopInvariantMotion) Name() string {
	return "loop-invariant motion"
}

func (lm *LoopInvariantMotion) Description() string {
	return "Moves constant-operand computations out of marker-delimited loops"
}

func (lm *LoopInvariantMotion) Apply(program tac.Program) tac.Program {
	if _, ok := loopRegions(program); !ok {
		return program
	}
	// Hoisting shifts positions, so regions are re-scanned after each
	// loop is processed. Outermost loops (earliest start) go first.
	for k := 0; ; k++ {
		regions, ok := loopRegions(program)
		if !ok || k >= len(regions) {
			break
		}
		program = hoist(program, regions[k])
	}
	return program
}

// loopRegions pairs loop-start markers with their matching endloop markers.
// It reports false when the markers do not balance.
func loopRegions(program tac.Program) ([]loopRegion, bool) {
	var open []int
	var regions []loopRegion
	for i, inst := range program {
		m, ok := inst.(*tac.Marker)
		if !ok {
			continue
		}
		switch {
		case m.Kind.IsLoopStart():
			open = append(open, i)
		case m.Kind == tac.MarkerEndLoop:
			if len(open) == 0 {
				return nil, false
			}
			regions = append(regions, loopRegion{start: open[len(open)-1], end: i})
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return nil, false
	}
	sort.Slice(regions, func(a, b int) bool { return regions[a].start < regions[b].start })
	return regions, true
}

func hoist(program tac.Program, region loopRegion) tac.Program {
	var hoisted tac.Program
	body := make(tac.Program, 0, region.end-region.start-1)
	for i := region.start + 1; i < region.end; i++ {
		if b, ok := program[i].(*tac.BinaryOp); ok && invariantOperand(b.Left) && invariantOperand(b.Right) {
			log.Debugf("licm: hoisted %s before loop at %d", b, region.start)
			hoisted = append(hoisted, b)
			continue
		}
		body = append(body, program[i])
	}
	if len(hoisted) == 0 {
		return program
	}
	out := make(tac.Program, 0, len(program))
	out = append(out, program[:region.start]...)
	out = append(out, hoisted...)
	out = append(out, program[region.start])
	out = append(out, body...)
	out = append(out, program[region.end:]...)
	return out
}

func invariantOperand(op tac.Operand) bool {
	v, ok := op.(tac.Var)
	if !ok {
		return tac.IsLiteral(op)
	}
	return constantName(v)
}

// constantName reports whether a variable follows the uppercase constant
// naming convention (letters, digits and underscores, no lowercase, at
// least one letter).
func constantName(v tac.Var) bool {
	hasLetter := false
	for _, r := range v {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return hasLetter
}
