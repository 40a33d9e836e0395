package internal

import "fmt"

// Type is the static type of a variable or of a reduced expression.
// ErrorType absorbs: an operation with an ErrorType operand yields ErrorType and is never
// reported again, only the first violation of a chain is.
type Type int

const (
	IntType Type = iota
	BoolType
	CharType
	ErrorType
)

func (tp Type) String() string {
	switch tp {
	case IntType:
		return "INT"
	case BoolType:
		return "BOOL"
	case CharType:
		return "CHAR"
	}
	return "ERROR"
}

func isTypeToken(tp TokenType) bool {
	return tp == IntTP || tp == BoolTP || tp == CharTP
}

func typeOfTypeToken(tp TokenType) Type {
	switch tp {
	case IntTP:
		return IntType
	case BoolTP:
		return BoolType
	case CharTP:
		return CharType
	}
	return ErrorType
}

type binaryOperator struct {
	name     string
	mnemonic string // instruction for arithmetic and logic, conditional jump for comparisons.
	operand  Type   // required type of both operands, ErrorType means any type as long as both are equal.
	result   Type
	compare  bool // lowered into jumps instead of a single instruction.
}

var binaryOperators = map[TokenType]binaryOperator{
	OrTP:           {name: "||", mnemonic: OrOp, operand: BoolType, result: BoolType},
	AndTP:          {name: "&&", mnemonic: AndOp, operand: BoolType, result: BoolType},
	EqualTP:        {name: "==", mnemonic: JeqOp, operand: ErrorType, result: BoolType, compare: true},
	NotEqualTP:     {name: "!=", mnemonic: JneOp, operand: ErrorType, result: BoolType, compare: true},
	LessTP:         {name: "<", mnemonic: JltOp, operand: IntType, result: BoolType, compare: true},
	LessEqualTP:    {name: "<=", mnemonic: JleOp, operand: IntType, result: BoolType, compare: true},
	GreaterTP:      {name: ">", mnemonic: JgtOp, operand: IntType, result: BoolType, compare: true},
	GreaterEqualTP: {name: ">=", mnemonic: JgeOp, operand: IntType, result: BoolType, compare: true},
	AddTP:          {name: "+", mnemonic: AddOp, operand: IntType, result: IntType},
	MinusTP:        {name: "-", mnemonic: SubOp, operand: IntType, result: IntType},
	MultiplyTP:     {name: "*", mnemonic: MulOp, operand: IntType, result: IntType},
	DivideTP:       {name: "/", mnemonic: DivOp, operand: IntType, result: IntType},
	ModTP:          {name: "%", mnemonic: ModOp, operand: IntType, result: IntType},
}

type unaryOperator struct {
	name     string
	mnemonic string
	operand  Type
	result   Type
}

var unaryOperators = map[TokenType]unaryOperator{
	NotTP:   {name: "!", mnemonic: NotOp, operand: BoolType, result: BoolType},
	MinusTP: {name: "-", mnemonic: NegOp, operand: IntType, result: IntType},
}

// checkBinary returns the result type of left op right, and a non empty message when the
// operands violate the rule of op.
func (op binaryOperator) checkBinary(left, right Type) (Type, string) {
	if left == ErrorType || right == ErrorType {
		return ErrorType, ""
	}
	if op.operand == ErrorType {
		if left != right {
			return ErrorType, fmt.Sprintf("operator '%s' requires operands of the same type, found %s and %s", op.name, left, right)
		}
		return op.result, ""
	}
	if left != op.operand || right != op.operand {
		return ErrorType, fmt.Sprintf("operator '%s' requires %s operands, found %s and %s", op.name, op.operand, left, right)
	}
	return op.result, ""
}

func (op unaryOperator) checkUnary(operand Type) (Type, string) {
	if operand == ErrorType {
		return ErrorType, ""
	}
	if operand != op.operand {
		return ErrorType, fmt.Sprintf("unary operator '%s' requires a %s operand, found %s", op.name, op.operand, operand)
	}
	return op.result, ""
}

// checkAssign reports an incompatible assignment, a declared ErrorType (undeclared variable)
// was already reported.
func checkAssign(name string, declared, value Type) string {
	if declared == ErrorType || value == ErrorType || declared == value {
		return ""
	}
	return fmt.Sprintf("incompatible assignment to '%s': variable is %s, expression is %s", name, declared, value)
}

func checkCondition(statement string, cond Type) string {
	if cond == ErrorType || cond == BoolType {
		return ""
	}
	return fmt.Sprintf("condition of '%s' must be BOOL, found %s", statement, cond)
}
