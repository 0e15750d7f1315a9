package optimizer

import (
	"tacopt/internal/tac"
)

// exprKey identifies a computed expression by syntactic identity of the
// operator and both operands. There is no commutativity normalization:
// a+b and b+a are distinct keys.
type exprKey struct {
	Op    tac.OpKind
	Left  tac.Operand
	Right tac.Operand
}

// CommonSubexpressionElimination replaces a binary operation whose exact
// (op, left, right) tuple was already computed with a copy from the
// variable that first computed it.
//
// Known limitation, preserved deliberately: an entry is never invalidated
// when one of its operand variables is reassigned between the first
// computation and a later match. This "no aliasing within straight-line
// code" assumption holds for generated temporaries but not for arbitrary
// variable reuse.
type CommonSubexpressionElimination struct{}

func (cse *CommonSubexpressionElimination) Name() string {
	return "common subexpression elimination"
}

func (cse *CommonSubexpressionElimination) Description() string {
	return "Replaces repeated identical computations with copies of the first result"
}

func (cse *CommonSubexpressionElimination) Apply(program tac.Program) tac.Program {
	available := make(map[exprKey]tac.Var)
	out := make(tac.Program, 0, len(program))
	for _, inst := range program {
		b, ok := inst.(*tac.BinaryOp)
		if !ok {
			out = append(out, inst)
			continue
		}
		key := exprKey{Op: b.Op, Left: b.Left, Right: b.Right}
		if prev, seen := available[key]; seen {
			log.Debugf("cse: %s => %s = %s", b, b.Dest, prev)
			out = append(out, &tac.Assign{Dest: b.Dest, Src: prev})
			continue
		}
		available[key] = b.Dest
		out = append(out, b)
	}
	return out
}
