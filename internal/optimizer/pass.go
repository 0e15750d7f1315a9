package optimizer

import (
	"github.com/tliron/commonlog"

	"tacopt/internal/tac"
)

var log = commonlog.GetLogger("tacopt.optimizer")

// Pass is a single rewrite transformation over the instruction sequence.
// Apply takes ownership of the current program and returns a new one; the
// input must not be used afterwards. Every pass is total: instruction
// shapes it does not recognize are passed through unchanged, and a failed
// rewrite attempt leaves the instruction exactly as it was.
type Pass interface {
	Name() string
	Description() string
	Apply(program tac.Program) tac.Program
}

func isZero(op tac.Operand) bool {
	switch v := op.(type) {
	case tac.Int:
		return v == 0
	case tac.Float:
		return v == 0
	}
	return false
}

func isOne(op tac.Operand) bool {
	switch v := op.(type) {
	case tac.Int:
		return v == 1
	case tac.Float:
		return v == 1
	}
	return false
}
