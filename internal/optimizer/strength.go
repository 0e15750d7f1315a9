package optimizer

import (
	"tacopt/internal/tac"
)

// StrengthReduction rewrites multiplication and division by an integer
// power-of-two literal into shifts. Multiplying by exactly 2 is rewritten
// as an addition of the operand to itself instead; that rule is checked
// first so it takes precedence over the generic shift rule.
type StrengthReduction struct{}

func (sr *StrengthReduction) Name() string {
	return "strength reduction"
}

func (sr *StrengthReduction) Description() string {
	return "Replaces power-of-two multiply/divide with shifts, multiply-by-two with addition"
}

func (sr *StrengthReduction) Apply(program tac.Program) tac.Program {
	out := make(tac.Program, 0, len(program))
	for _, inst := range program {
		b, ok := inst.(*tac.BinaryOp)
		if !ok || (b.Op != tac.OpMul && b.Op != tac.OpDiv) {
			out = append(out, inst)
			continue
		}
		r, ok := b.Right.(tac.Int)
		if !ok || !isPowerOfTwo(r) {
			out = append(out, inst)
			continue
		}
		var rewritten *tac.BinaryOp
		if b.Op == tac.OpMul && r == 2 {
			// Addition beats a shift on the target architecture.
			rewritten = &tac.BinaryOp{Dest: b.Dest, Op: tac.OpAdd, Left: b.Left, Right: b.Left}
		} else {
			shift := tac.OpShl
			if b.Op == tac.OpDiv {
				shift = tac.OpShr
			}
			rewritten = &tac.BinaryOp{Dest: b.Dest, Op: shift, Left: b.Left, Right: log2(r)}
		}
		log.Debugf("strength: %s => %s", b, rewritten)
		out = append(out, rewritten)
	}
	return out
}

func isPowerOfTwo(n tac.Int) bool {
	return n >= 2 && n&(n-1) == 0
}

func log2(n tac.Int) tac.Int {
	var e tac.Int
	for n > 1 {
		n >>= 1
		e++
	}
	return e
}
