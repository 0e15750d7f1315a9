package optimizer

import (
	"tacopt/internal/tac"
)

// liveWindow is the number of trailing instructions (and instructions
// before an exit marker) whose destinations are conservatively treated as
// program outputs.
const liveWindow = 3

// DeadCodeElimination drops assignments and computations whose results are
// never used. Control markers are never eliminated. Variables defined in
// the final instructions of the program, or just before an exit marker,
// are kept as likely outputs. Removal cascades: dropping an instruction can
// strand the uses that kept another one alive, so the def/use index is
// rebuilt and the filter re-applied until the program is stable. That makes
// the pass a fixed point of itself, which the pipeline's fixed schedule
// relies on.
type DeadCodeElimination struct{}

func (dce *DeadCodeElimination) Name() string {
	return "dead code elimination"
}

func (dce *DeadCodeElimination) Description() string {
	return "Removes instructions whose results are never used"
}

func (dce *DeadCodeElimination) Apply(program tac.Program) tac.Program {
	for {
		filtered := dce.filter(program)
		if len(filtered) == len(program) {
			return filtered
		}
		program = filtered
	}
}

func (dce *DeadCodeElimination) filter(program tac.Program) tac.Program {
	usage := AnalyzeUsage(program)

	live := make(map[tac.Var]bool)
	for v, uses := range usage.Uses {
		if len(uses) > 0 {
			live[v] = true
		}
	}
	markWindow := func(end int) {
		for i := end - liveWindow; i < end; i++ {
			if i < 0 {
				continue
			}
			switch in := program[i].(type) {
			case *tac.Assign:
				live[in.Dest] = true
			case *tac.BinaryOp:
				live[in.Dest] = true
			}
		}
	}
	markWindow(len(program))
	for i, inst := range program {
		if m, ok := inst.(*tac.Marker); ok && m.Kind == tac.MarkerExit {
			markWindow(i)
		}
	}

	out := make(tac.Program, 0, len(program))
	for _, inst := range program {
		switch in := inst.(type) {
		case *tac.Assign:
			if live[in.Dest] {
				out = append(out, in)
			} else {
				log.Debugf("dce: dropped %s", in)
			}
		case *tac.BinaryOp:
			if live[in.Dest] {
				out = append(out, in)
			} else {
				log.Debugf("dce: dropped %s", in)
			}
		default:
			// Control flow, calls and returns always survive.
			out = append(out, inst)
		}
	}
	return out
}
