package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacopt/internal/tac"
)

func TestCSEReplacesDuplicateComputation(t *testing.T) {
	program := tac.Program{
		&tac.BinaryOp{Dest: "t1", Op: tac.OpAdd, Left: tac.Var("a"), Right: tac.Var("b")},
		&tac.BinaryOp{Dest: "t2", Op: tac.OpAdd, Left: tac.Var("a"), Right: tac.Var("b")},
	}

	out := (&CommonSubexpressionElimination{}).Apply(program)

	require.Len(t, out, 2)
	assert.Equal(t, program[0], out[0])
	assert.Equal(t, &tac.Assign{Dest: "t2", Src: tac.Var("t1")}, out[1])
}

func TestCSERequiresSyntacticIdentity(t *testing.T) {
	program := tac.Program{
		&tac.BinaryOp{Dest: "t1", Op: tac.OpAdd, Left: tac.Var("a"), Right: tac.Var("b")},
		&tac.BinaryOp{Dest: "t2", Op: tac.OpAdd, Left: tac.Var("b"), Right: tac.Var("a")}, // commuted, no match
		&tac.BinaryOp{Dest: "t3", Op: tac.OpSub, Left: tac.Var("a"), Right: tac.Var("b")}, // different op
	}

	out := (&CommonSubexpressionElimination{}).Apply(program)

	require.Len(t, out, 3)
	for i := range program {
		assert.Equal(t, program[i], out[i])
	}
}

func TestCSEDistinguishesLiteralKinds(t *testing.T) {
	// 2 and 2.0 render alike but are different operands
	program := tac.Program{
		&tac.BinaryOp{Dest: "t1", Op: tac.OpMul, Left: tac.Var("x"), Right: tac.Int(2)},
		&tac.BinaryOp{Dest: "t2", Op: tac.OpMul, Left: tac.Var("x"), Right: tac.Float(2)},
	}

	out := (&CommonSubexpressionElimination{}).Apply(program)

	require.Len(t, out, 2)
	assert.Equal(t, program[1], out[1])
}

func TestCSENoInvalidationOnOperandWrite(t *testing.T) {
	// Known approximation: the write to a between the two computations
	// does not invalidate the cached expression.
	program := tac.Program{
		&tac.BinaryOp{Dest: "t1", Op: tac.OpAdd, Left: tac.Var("a"), Right: tac.Var("b")},
		&tac.Assign{Dest: "a", Src: tac.Int(99)},
		&tac.BinaryOp{Dest: "t2", Op: tac.OpAdd, Left: tac.Var("a"), Right: tac.Var("b")},
	}

	out := (&CommonSubexpressionElimination{}).Apply(program)

	require.Len(t, out, 3)
	assert.Equal(t, &tac.Assign{Dest: "t2", Src: tac.Var("t1")}, out[2])
}
