package internal

import (
	"fmt"
	"strings"

	"github.com/xiaobogaga/minilang/util"
)

// Mnemonics of the three-address code. The runner interprets exactly these.
const (
	CopyOp  = "copy"  // copy src _ dst
	AddOp   = "add"   // add x y dst
	SubOp   = "sub"   // sub x y dst
	MulOp   = "mul"   // mul x y dst
	DivOp   = "div"   // div x y dst
	ModOp   = "mod"   // mod x y dst
	AndOp   = "and"   // and x y dst
	OrOp    = "or"    // or x y dst
	NegOp   = "neg"   // neg x _ dst
	NotOp   = "not"   // not x _ dst
	JeqOp   = "jeq"   // jeq x y label
	JneOp   = "jne"   // jne x y label
	JltOp   = "jlt"   // jlt x y label
	JleOp   = "jle"   // jle x y label
	JgtOp   = "jgt"   // jgt x y label
	JgeOp   = "jge"   // jge x y label
	GotoOp  = "goto"  // goto _ _ label
	SkipOp  = "skip"  // skip label, a label marker
	PrintOp = "print" // print x
)

// Boolean encoding: true is all ones, false is zero.
const (
	TrueValue  = "-1"
	FalseValue = "0"
)

// Instruction is never mutated after it has been emitted. Empty operands are "".
type Instruction struct {
	Op string
	A  string
	B  string
	C  string
}

func (ins Instruction) String() string {
	return strings.TrimRight(fmt.Sprintf("%-7s %-8s %-8s %-8s", ins.Op, ins.A, ins.B, ins.C), " ")
}

// CodeBuilder records emitted instructions and hands out fresh temporaries and labels. It has no
// idea what the instructions mean.
type CodeBuilder struct {
	code       []Instruction
	tempCount  int
	labelCount int
}

func NewCodeBuilder() *CodeBuilder {
	return &CodeBuilder{}
}

func (builder *CodeBuilder) NewTemp() string {
	builder.tempCount++
	return fmt.Sprintf("t%d", builder.tempCount)
}

// IsTemporaryName reports whether name has the shape of a temporary. Temporaries and program
// variables share one namespace in the rendered code.
func IsTemporaryName(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !util.IsNumber(name[i]) {
			return false
		}
	}
	return true
}

func (builder *CodeBuilder) NewLabel() string {
	builder.labelCount++
	return fmt.Sprintf("L%d", builder.labelCount)
}

func (builder *CodeBuilder) Emit(op, a, b, c string) {
	builder.code = append(builder.code, Instruction{Op: op, A: a, B: b, C: c})
}

func (builder *CodeBuilder) EmitLabel(label string) {
	builder.code = append(builder.code, Instruction{Op: SkipOp, A: label})
}

func (builder *CodeBuilder) Instructions() []Instruction {
	return builder.code
}

func (builder *CodeBuilder) Len() int {
	return len(builder.code)
}

func (builder *CodeBuilder) RenderAll() []string {
	lines := make([]string, 0, len(builder.code))
	for _, ins := range builder.code {
		lines = append(lines, ins.String())
	}
	return lines
}

// String is the content of intermediate.txt.
func (builder *CodeBuilder) String() string {
	sb := strings.Builder{}
	for _, line := range builder.RenderAll() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
