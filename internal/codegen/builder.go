package codegen

import (
	"fmt"
	"strconv"

	"tacopt/grammar"
	"tacopt/internal/tac"
)

// Builder lowers a parsed program into three-address code. Intermediate
// expression results get fresh temporaries (t1, t2, ...) from a counter
// owned by the builder instance, so independent runs never share numbering.
type Builder struct {
	temp int
	out  tac.Program
}

// NewBuilder creates a builder with a fresh temporary counter.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build lowers the program. Comments are discarded; every other statement
// produces at least one instruction.
func (b *Builder) Build(prog *grammar.Program) tac.Program {
	b.out = nil
	for _, stmt := range prog.Statements {
		b.statement(stmt)
	}
	return b.out
}

func (b *Builder) statement(s *grammar.Statement) {
	switch {
	case s.Comment != nil:
		// not lowered
	case s.Assign != nil:
		b.assign(s.Assign)
	case s.While != nil:
		cond := b.expr(s.While.Cond)
		b.emit(&tac.Marker{Kind: tac.MarkerWhile, Payload: cond})
		for _, inner := range s.While.Body {
			b.statement(inner)
		}
		b.emit(&tac.Marker{Kind: tac.MarkerEndLoop})
	case s.Exit != nil:
		b.emit(&tac.Marker{Kind: tac.MarkerExit})
	case s.Return != nil:
		var payload tac.Operand
		if s.Return.Value != nil {
			payload = b.expr(s.Return.Value)
		}
		b.emit(&tac.Marker{Kind: tac.MarkerReturn, Payload: payload})
	case s.Call != nil:
		b.emit(&tac.Marker{Kind: tac.MarkerCall, Payload: tac.Var(s.Call.Name)})
	case s.Label != nil:
		b.emit(&tac.Marker{Kind: tac.MarkerLabel, Payload: tac.Var(s.Label.Name)})
	}
}

// assign lowers the right-hand side and writes the root result directly
// into the target, avoiding a spurious trailing temporary.
func (b *Builder) assign(s *grammar.AssignStmt) {
	mark := len(b.out)
	result := b.expr(s.Value)
	if n := len(b.out); n > mark {
		if root, ok := b.out[n-1].(*tac.BinaryOp); ok && root.Dest == result {
			b.out[n-1] = &tac.BinaryOp{Dest: tac.Var(s.Target), Op: root.Op, Left: root.Left, Right: root.Right}
			return
		}
	}
	b.emit(&tac.Assign{Dest: tac.Var(s.Target), Src: result})
}

// expr lowers an expression by precedence climbing over the flat operator
// list the grammar produces, emitting one binary instruction per operator.
func (b *Builder) expr(e *grammar.Expr) tac.Operand {
	left := b.unary(e.Left)
	pos := 0
	return b.climb(left, e.Ops, &pos, 1)
}

func (b *Builder) climb(left tac.Operand, ops []*grammar.BinOp, pos *int, minPrec int) tac.Operand {
	for *pos < len(ops) && precedence(ops[*pos].Operator) >= minPrec {
		op := ops[*pos]
		*pos++
		right := b.unary(op.Right)
		for *pos < len(ops) && precedence(ops[*pos].Operator) > precedence(op.Operator) {
			right = b.climb(right, ops, pos, precedence(ops[*pos].Operator))
		}
		t := b.newTemp()
		b.emit(&tac.BinaryOp{Dest: t, Op: tac.OpKind(op.Operator), Left: left, Right: right})
		left = t
	}
	return left
}

// precedence ranks binary operators for climbing: multiplicative and shift
// operators bind tighter than additive ones. All operators are
// left-associative.
func precedence(op string) int {
	switch op {
	case "*", "/", "<<", ">>":
		return 2
	case "+", "-":
		return 1
	}
	return 0
}

func (b *Builder) unary(u *grammar.UnaryExpr) tac.Operand {
	val := b.primary(u.Value)
	if !u.Minus {
		return val
	}
	switch v := val.(type) {
	case tac.Int:
		return -v
	case tac.Float:
		return -v
	}
	t := b.newTemp()
	b.emit(&tac.BinaryOp{Dest: t, Op: tac.OpSub, Left: tac.Int(0), Right: val})
	return t
}

func (b *Builder) primary(p *grammar.PrimaryExpr) tac.Operand {
	switch {
	case p.Float != nil:
		f, _ := strconv.ParseFloat(*p.Float, 64)
		return tac.Float(f)
	case p.Integer != nil:
		if i, err := strconv.ParseInt(*p.Integer, 10, 64); err == nil {
			return tac.Int(i)
		}
		// out of int64 range
		f, _ := strconv.ParseFloat(*p.Integer, 64)
		return tac.Float(f)
	case p.Ident != nil:
		return tac.Var(*p.Ident)
	case p.Parens != nil:
		return b.expr(p.Parens)
	}
	return tac.Int(0)
}

func (b *Builder) emit(inst tac.Instruction) {
	b.out = append(b.out, inst)
}

func (b *Builder) newTemp() tac.Var {
	b.temp++
	return tac.Var(fmt.Sprintf("t%d", b.temp))
}
