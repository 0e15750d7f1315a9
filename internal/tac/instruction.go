package tac

import (
	"fmt"
	"strconv"
)

// Three-address code: every instruction has at most two source operands and
// one named destination. A Program is a flat ordered list; instruction order
// is the only control-flow representation (loop and branch structure is
// carried by markers, not by a graph).

// Var is an interned variable name.
type Var string

// Operand is a variable reference or a numeric literal.
type Operand interface {
	operand()
	String() string
}

func (Var) operand() {}

func (v Var) String() string { return string(v) }

// Int is an integer literal operand.
type Int int64

func (Int) operand() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a floating-point literal operand.
type Float float64

func (Float) operand() {}

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// IsLiteral reports whether op is a numeric literal.
func IsLiteral(op Operand) bool {
	switch op.(type) {
	case Int, Float:
		return true
	}
	return false
}

// OpKind identifies a binary operator.
type OpKind string

const (
	OpAdd OpKind = "+"
	OpSub OpKind = "-"
	OpMul OpKind = "*"
	OpDiv OpKind = "/"
	OpShl OpKind = "<<"
	OpShr OpKind = ">>"
)

// MarkerKind identifies a non-data control instruction.
type MarkerKind string

const (
	MarkerFor     MarkerKind = "for"
	MarkerWhile   MarkerKind = "while"
	MarkerEndLoop MarkerKind = "endloop"
	MarkerBranch  MarkerKind = "branch"
	MarkerExit    MarkerKind = "exit"
	MarkerCall    MarkerKind = "call"
	MarkerReturn  MarkerKind = "return"
	MarkerLabel   MarkerKind = "label"
)

// IsLoopStart reports whether k opens a loop region.
func (k MarkerKind) IsLoopStart() bool { return k == MarkerFor || k == MarkerWhile }

// Instruction is one three-address-code instruction.
type Instruction interface {
	instruction()
	String() string
}

// Assign copies a literal or another variable into Dest.
type Assign struct {
	Dest Var
	Src  Operand
}

func (*Assign) instruction() {}

func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Dest, a.Src)
}

// BinaryOp computes Left Op Right into Dest.
type BinaryOp struct {
	Dest  Var
	Op    OpKind
	Left  Operand
	Right Operand
}

func (*BinaryOp) instruction() {}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("%s = %s %s %s", b.Dest, b.Left, b.Op, b.Right)
}

// Marker is a control instruction: loop boundary, branch, exit, call,
// return, or label. Payload is optional (nil when the marker carries none).
type Marker struct {
	Kind    MarkerKind
	Payload Operand
}

func (*Marker) instruction() {}

func (m *Marker) String() string {
	if m.Payload != nil {
		return fmt.Sprintf("%s %s", m.Kind, m.Payload)
	}
	return string(m.Kind)
}

// Program is an ordered instruction sequence.
type Program []Instruction

// Clone returns a shallow copy of the instruction list. Instructions are
// immutable once built, so sharing them between copies is safe.
func (p Program) Clone() Program {
	out := make(Program, len(p))
	copy(out, p)
	return out
}
