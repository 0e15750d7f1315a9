package tac

import (
	"fmt"
	"strings"
)

// Printer renders a Program as a numbered, human-readable listing.
type Printer struct {
	output strings.Builder
}

// NewPrinter creates a new program printer.
func NewPrinter() *Printer {
	return &Printer{}
}

// Format returns the string representation of a program, one instruction
// per line as "<index>: <instruction>".
func Format(p Program) string {
	pr := NewPrinter()
	pr.printProgram(p)
	return pr.output.String()
}

// FormatInstruction renders a single instruction with its position.
func FormatInstruction(index int, inst Instruction) string {
	return fmt.Sprintf("%d: %s", index, inst)
}

func (pr *Printer) printProgram(p Program) {
	for i, inst := range p {
		pr.writeLine("%d: %s", i, inst)
	}
}

func (pr *Printer) writeLine(format string, args ...interface{}) {
	pr.output.WriteString(fmt.Sprintf(format, args...))
	pr.output.WriteString("\n")
}
