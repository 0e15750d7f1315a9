package optimizer

import (
	"tacopt/internal/tac"
)

// ConstantFolding evaluates binary operations over two numeric literals at
// optimization time. Division by a literal zero is never folded: the
// original instruction is preserved so runtime division semantics stay out
// of the optimizer. An integer division with a remainder, and any division
// of floats whose quotient is integral, normalize to the cheaper of the two
// literal forms.
type ConstantFolding struct{}

func (cf *ConstantFolding) Name() string {
	return "constant folding"
}

func (cf *ConstantFolding) Description() string {
	return "Evaluates literal expressions at compile time and replaces them with their results"
}

func (cf *ConstantFolding) Apply(program tac.Program) tac.Program {
	out := make(tac.Program, 0, len(program))
	for _, inst := range program {
		b, ok := inst.(*tac.BinaryOp)
		if !ok || !tac.IsLiteral(b.Left) || !tac.IsLiteral(b.Right) {
			out = append(out, inst)
			continue
		}
		result, ok := foldLiterals(b.Op, b.Left, b.Right)
		if !ok {
			out = append(out, inst)
			continue
		}
		log.Debugf("fold: %s => %s = %s", b, b.Dest, result)
		out = append(out, &tac.Assign{Dest: b.Dest, Src: result})
	}
	return out
}

// foldLiterals computes op over two literal operands. It returns false when
// the operation cannot be evaluated: division by zero, a shift with a
// non-integer or out-of-range count, or an operator it does not know.
func foldLiterals(op tac.OpKind, left, right tac.Operand) (tac.Operand, bool) {
	li, lIsInt := left.(tac.Int)
	ri, rIsInt := right.(tac.Int)

	if lIsInt && rIsInt {
		switch op {
		case tac.OpAdd:
			return li + ri, true
		case tac.OpSub:
			return li - ri, true
		case tac.OpMul:
			return li * ri, true
		case tac.OpDiv:
			if ri == 0 {
				return nil, false
			}
			if li%ri == 0 {
				return li / ri, true
			}
			return tac.Float(float64(li) / float64(ri)), true
		case tac.OpShl:
			if ri < 0 || ri > 63 {
				return nil, false
			}
			return li << ri, true
		case tac.OpShr:
			if ri < 0 || ri > 63 {
				return nil, false
			}
			return li >> ri, true
		}
		return nil, false
	}

	// Mixed or floating-point operands: compute in float64. Shifts are
	// integer-only and stay unfolded.
	lf, lok := literalFloat(left)
	rf, rok := literalFloat(right)
	if !lok || !rok {
		return nil, false
	}
	switch op {
	case tac.OpAdd:
		return tac.Float(lf + rf), true
	case tac.OpSub:
		return tac.Float(lf - rf), true
	case tac.OpMul:
		return tac.Float(lf * rf), true
	case tac.OpDiv:
		if rf == 0 {
			return nil, false
		}
		q := lf / rf
		if q == float64(int64(q)) {
			return tac.Int(int64(q)), true
		}
		return tac.Float(q), true
	}
	return nil, false
}

func literalFloat(op tac.Operand) (float64, bool) {
	switch v := op.(type) {
	case tac.Int:
		return float64(v), true
	case tac.Float:
		return float64(v), true
	}
	return 0, false
}
