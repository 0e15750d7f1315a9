package optimizer

import (
	"tacopt/internal/tac"
)

// Peephole applies local algebraic identities to each instruction in
// isolation: x+0, 0+x, x*1, 1*x, x-0 and x/1 become plain copies, x*0 and
// 0*x become the literal zero, and self-assignments are dropped entirely.
// Multiply-by-zero is checked before multiply-by-one so the annihilator
// wins when both could match.
type Peephole struct{}

func (ph *Peephole) Name() string {
	return "peephole"
}

func (ph *Peephole) Description() string {
	return "Applies local algebraic identities and drops self-assignments"
}

func (ph *Peephole) Apply(program tac.Program) tac.Program {
	out := make(tac.Program, 0, len(program))
	for _, inst := range program {
		switch in := inst.(type) {
		case *tac.Assign:
			if src, ok := in.Src.(tac.Var); ok && src == in.Dest {
				log.Debugf("peephole: dropped self-assignment %s", in)
				continue
			}
			out = append(out, in)
		case *tac.BinaryOp:
			simplified, ok := simplify(in)
			if !ok {
				out = append(out, in)
				continue
			}
			// A simplification can itself collapse to a self-copy
			// (e.g. x = x + 0). Drop it like any other.
			if src, isVar := simplified.Src.(tac.Var); isVar && src == simplified.Dest {
				log.Debugf("peephole: dropped %s (identity of %s)", in, simplified.Dest)
				continue
			}
			log.Debugf("peephole: %s => %s", in, simplified)
			out = append(out, simplified)
		default:
			out = append(out, inst)
		}
	}
	return out
}

// simplify rewrites a binary operation matching an algebraic identity into
// a plain copy. It returns false when no identity applies.
func simplify(b *tac.BinaryOp) (*tac.Assign, bool) {
	switch b.Op {
	case tac.OpAdd:
		if isZero(b.Right) {
			return &tac.Assign{Dest: b.Dest, Src: b.Left}, true
		}
		if isZero(b.Left) {
			return &tac.Assign{Dest: b.Dest, Src: b.Right}, true
		}
	case tac.OpMul:
		if isZero(b.Right) || isZero(b.Left) {
			return &tac.Assign{Dest: b.Dest, Src: tac.Int(0)}, true
		}
		if isOne(b.Right) {
			return &tac.Assign{Dest: b.Dest, Src: b.Left}, true
		}
		if isOne(b.Left) {
			return &tac.Assign{Dest: b.Dest, Src: b.Right}, true
		}
	case tac.OpSub:
		if isZero(b.Right) {
			return &tac.Assign{Dest: b.Dest, Src: b.Left}, true
		}
	case tac.OpDiv:
		if isOne(b.Right) {
			return &tac.Assign{Dest: b.Dest, Src: b.Left}, true
		}
	}
	return nil, false
}
