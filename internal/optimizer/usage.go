package optimizer

import (
	"tacopt/internal/tac"
)

// Usage maps each variable to the ordered instruction positions that define
// it and the ordered positions that use it as an operand. The index is
// rebuilt from scratch after every structural change to the program, never
// patched in place, so positions are always accurate.
type Usage struct {
	Defs map[tac.Var][]int
	Uses map[tac.Var][]int
}

// AnalyzeUsage computes the def/use index for a program. Pure function,
// O(n) in instruction count, safe to re-invoke at any point.
func AnalyzeUsage(program tac.Program) *Usage {
	u := &Usage{
		Defs: make(map[tac.Var][]int),
		Uses: make(map[tac.Var][]int),
	}
	for i, inst := range program {
		switch in := inst.(type) {
		case *tac.Assign:
			u.Defs[in.Dest] = append(u.Defs[in.Dest], i)
			u.addUse(in.Src, i)
		case *tac.BinaryOp:
			u.Defs[in.Dest] = append(u.Defs[in.Dest], i)
			u.addUse(in.Left, i)
			u.addUse(in.Right, i)
		case *tac.Marker:
			if in.Payload != nil {
				u.addUse(in.Payload, i)
			}
		}
	}
	return u
}

func (u *Usage) addUse(op tac.Operand, pos int) {
	if v, ok := op.(tac.Var); ok {
		u.Uses[v] = append(u.Uses[v], pos)
	}
}

// UsedBetween reports whether v has a use at a position p with lo < p < hi.
func (u *Usage) UsedBetween(v tac.Var, lo, hi int) bool {
	for _, p := range u.Uses[v] {
		if p > lo && p < hi {
			return true
		}
	}
	return false
}
