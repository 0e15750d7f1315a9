package optimizer

import (
	"tacopt/internal/tac"
)

// RedundantAssignElimination removes a plain assignment that is overwritten
// by a later plain assignment to the same variable with no intervening use
// of the earlier value. Binary operations neither count as the earlier
// assignment nor as the overwrite; only simple copies qualify on both ends.
type RedundantAssignElimination struct{}

func (ra *RedundantAssignElimination) Name() string {
	return "redundant assignment elimination"
}

func (ra *RedundantAssignElimination) Description() string {
	return "Removes plain assignments overwritten before their value is used"
}

func (ra *RedundantAssignElimination) Apply(program tac.Program) tac.Program {
	usage := AnalyzeUsage(program)

	lastAssign := make(map[tac.Var]int)
	remove := make(map[int]bool)
	for i, inst := range program {
		a, ok := inst.(*tac.Assign)
		if !ok {
			continue
		}
		if prev, seen := lastAssign[a.Dest]; seen && !usage.UsedBetween(a.Dest, prev, i) {
			log.Debugf("redundant: dropped %s (overwritten at %d)", tac.FormatInstruction(prev, program[prev]), i)
			remove[prev] = true
		}
		lastAssign[a.Dest] = i
	}

	if len(remove) == 0 {
		return program
	}
	out := make(tac.Program, 0, len(program)-len(remove))
	for i, inst := range program {
		if !remove[i] {
			out = append(out, inst)
		}
	}
	return out
}
