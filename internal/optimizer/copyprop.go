package optimizer

import (
	"tacopt/internal/tac"
)

// CopyPropagation replaces variable operands with the literal or variable
// they were most recently copied from, in a single forward scan. The
// known-value map is updated at definition sites only: a plain assignment
// records the destination's new value, a binary operation clears it.
//
// Known limitation, preserved deliberately: a recorded value is never
// invalidated when the variable it was copied *from* is later reassigned.
// Straight-line code with unique temporaries never trips over this; code
// that reuses names can.
type CopyPropagation struct{}

func (cp *CopyPropagation) Name() string {
	return "copy propagation"
}

func (cp *CopyPropagation) Description() string {
	return "Forwards known literal and copy values into later operand positions"
}

func (cp *CopyPropagation) Apply(program tac.Program) tac.Program {
	known := make(map[tac.Var]tac.Operand)
	out := make(tac.Program, 0, len(program))
	for _, inst := range program {
		switch in := inst.(type) {
		case *tac.Assign:
			src := in.Src
			if v, ok := src.(tac.Var); ok {
				if val, recorded := known[v]; recorded {
					src = val
				}
			}
			if src != in.Src {
				log.Debugf("copyprop: %s => %s = %s", in, in.Dest, src)
				out = append(out, &tac.Assign{Dest: in.Dest, Src: src})
			} else {
				out = append(out, in)
			}
			known[in.Dest] = src
		case *tac.BinaryOp:
			left := substitute(in.Left, known)
			right := substitute(in.Right, known)
			if left != in.Left || right != in.Right {
				rewritten := &tac.BinaryOp{Dest: in.Dest, Op: in.Op, Left: left, Right: right}
				log.Debugf("copyprop: %s => %s", in, rewritten)
				out = append(out, rewritten)
			} else {
				out = append(out, in)
			}
			// The destination no longer holds a simple copy.
			delete(known, in.Dest)
		default:
			out = append(out, inst)
		}
	}
	return out
}

func substitute(op tac.Operand, known map[tac.Var]tac.Operand) tac.Operand {
	if v, ok := op.(tac.Var); ok {
		if val, recorded := known[v]; recorded {
			return val
		}
	}
	return op
}
