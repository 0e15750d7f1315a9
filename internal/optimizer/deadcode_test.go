package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacopt/internal/tac"
)

func TestDCEDropsUnusedDefinition(t *testing.T) {
	program := tac.Program{
		&tac.Assign{Dest: "dead", Src: tac.Int(1)}, // 0: never used, outside every window
		&tac.Assign{Dest: "a", Src: tac.Int(2)},    // 1
		&tac.Assign{Dest: "b", Src: tac.Int(3)},    // 2
		&tac.Assign{Dest: "c", Src: tac.Int(4)},    // 3
	}

	out := (&DeadCodeElimination{}).Apply(program)

	require.Len(t, out, 3)
	assert.Equal(t, program[1], out[0])
}

func TestDCEKeepsUsedDefinition(t *testing.T) {
	program := tac.Program{
		&tac.Assign{Dest: "x", Src: tac.Int(1)},
		&tac.BinaryOp{Dest: "a", Op: tac.OpAdd, Left: tac.Var("x"), Right: tac.Var("x")},
		&tac.Assign{Dest: "b", Src: tac.Int(2)},
		&tac.Assign{Dest: "c", Src: tac.Int(3)},
	}

	out := (&DeadCodeElimination{}).Apply(program)

	assert.Len(t, out, 4)
}

func TestDCEFinalWindowIsLive(t *testing.T) {
	// the last three definitions are treated as outputs
	program := tac.Program{
		&tac.Assign{Dest: "a", Src: tac.Int(1)},
		&tac.Assign{Dest: "b", Src: tac.Int(2)},
		&tac.Assign{Dest: "c", Src: tac.Int(3)},
	}

	out := (&DeadCodeElimination{}).Apply(program)

	assert.Len(t, out, 3)
}

func TestDCEExitWindowIsLive(t *testing.T) {
	program := tac.Program{
		&tac.Assign{Dest: "dead", Src: tac.Int(0)},  // 0
		&tac.Assign{Dest: "r1", Src: tac.Int(1)},    // 1: within 3 before exit
		&tac.Assign{Dest: "r2", Src: tac.Int(2)},    // 2
		&tac.Assign{Dest: "r3", Src: tac.Int(3)},    // 3
		&tac.Marker{Kind: tac.MarkerExit},           // 4
		&tac.Assign{Dest: "x", Src: tac.Int(5)},     // 5
		&tac.Assign{Dest: "y", Src: tac.Int(6)},     // 6
		&tac.Assign{Dest: "z", Src: tac.Int(7)},     // 7
	}

	out := (&DeadCodeElimination{}).Apply(program)

	require.Len(t, out, 7)
	assert.Equal(t, program[1], out[0])

	exits := 0
	for _, inst := range out {
		if m, ok := inst.(*tac.Marker); ok && m.Kind == tac.MarkerExit {
			exits++
		}
	}
	assert.Equal(t, 1, exits, "exit markers are never eliminated")
}

func TestDCEKeepsAllMarkers(t *testing.T) {
	program := tac.Program{
		&tac.Marker{Kind: tac.MarkerLabel, Payload: tac.Var("top")},
		&tac.Marker{Kind: tac.MarkerWhile, Payload: tac.Var("n")},
		&tac.Marker{Kind: tac.MarkerCall, Payload: tac.Var("f")},
		&tac.Marker{Kind: tac.MarkerEndLoop},
		&tac.Marker{Kind: tac.MarkerBranch, Payload: tac.Var("c")},
		&tac.Marker{Kind: tac.MarkerReturn},
	}

	out := (&DeadCodeElimination{}).Apply(program)

	assert.Len(t, out, len(program))
}

func TestDCECascades(t *testing.T) {
	// t feeds only u; u feeds nothing. Dropping u strands t, which must
	// then be dropped in the same pass.
	program := tac.Program{
		&tac.Assign{Dest: "t", Src: tac.Int(1)},                                           // 0
		&tac.BinaryOp{Dest: "u", Op: tac.OpAdd, Left: tac.Var("t"), Right: tac.Var("t")},  // 1
		&tac.Assign{Dest: "a", Src: tac.Int(2)},                                           // 2
		&tac.Assign{Dest: "b", Src: tac.Int(3)},                                           // 3
		&tac.Assign{Dest: "c", Src: tac.Int(4)},                                           // 4
	}

	out := (&DeadCodeElimination{}).Apply(program)

	require.Len(t, out, 3)
	assert.Equal(t, program[2], out[0])

	// a second application changes nothing
	again := (&DeadCodeElimination{}).Apply(out.Clone())
	assert.Equal(t, out, again)
}
