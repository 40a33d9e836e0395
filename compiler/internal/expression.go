package internal

import (
	"fmt"
	"strconv"
)

// Expressions, from the lowest precedence to the highest:
//
// expr     := or
// or       := and ( '||' and )*
// and      := eq ( '&&' eq )*
// eq       := rel ( ('=='|'!=') rel )*
// rel      := add ( ('<'|'<='|'>'|'>=') add )*
// add      := mul ( ('+'|'-') mul )*
// mul      := unary ( ('*'|'/'|'%') unary )*
// unary    := ('!'|'-') unary | primary
// primary  := NUM | CHAR_LIT | 'true' | 'false' | ID | '(' expr ')'
//
// Every procedure returns where the value of the reduced expression lives: a temporary, or the
// name of a variable which is used in place.

type ExprResult struct {
	Type  Type
	Place string
}

func (translator *Translator) parseExpression() ExprResult {
	return translator.parseOr()
}

func (translator *Translator) parseOr() ExprResult {
	return translator.parseLeftAssociative(translator.parseAnd, OrTP)
}

func (translator *Translator) parseAnd() ExprResult {
	return translator.parseLeftAssociative(translator.parseEquality, AndTP)
}

func (translator *Translator) parseEquality() ExprResult {
	return translator.parseLeftAssociative(translator.parseRelational, EqualTP, NotEqualTP)
}

func (translator *Translator) parseRelational() ExprResult {
	return translator.parseLeftAssociative(translator.parseAdditive, LessTP, LessEqualTP, GreaterTP, GreaterEqualTP)
}

func (translator *Translator) parseAdditive() ExprResult {
	return translator.parseLeftAssociative(translator.parseMultiplicative, AddTP, MinusTP)
}

func (translator *Translator) parseMultiplicative() ExprResult {
	return translator.parseLeftAssociative(translator.parseUnary, MultiplyTP, DivideTP, ModTP)
}

// parseLeftAssociative parses operand ( op operand )* and reduces from the left: a - b - c is
// (a - b) - c.
func (translator *Translator) parseLeftAssociative(operand func() ExprResult, ops ...TokenType) ExprResult {
	left := operand()
	for translator.checkAny(ops...) {
		opToken := translator.lookahead
		translator.advance()
		right := operand()
		left = translator.reduceBinary(opToken, left, right)
	}
	return left
}

// reduceBinary checks and emits left op right. The code is emitted even when the types are
// wrong, so the shape of the program stays intact.
func (translator *Translator) reduceBinary(opToken *Token, left, right ExprResult) ExprResult {
	op := binaryOperators[opToken.tp]
	tp, msg := op.checkBinary(left.Type, right.Type)
	if msg != "" {
		translator.semanticError(opToken, msg)
	}
	if op.compare {
		return ExprResult{Type: tp, Place: translator.emitComparison(op.mnemonic, left.Place, right.Place)}
	}
	temp := translator.code.NewTemp()
	translator.code.Emit(op.mnemonic, left.Place, right.Place, temp)
	return ExprResult{Type: tp, Place: temp}
}

// emitComparison lowers a relation into jumps, there is no instruction producing a boolean:
//
//	jxx  left right Ltrue
//	copy 0 _ t
//	goto Lend
//	skip Ltrue
//	copy -1 _ t
//	skip Lend
func (translator *Translator) emitComparison(jump, left, right string) string {
	temp := translator.code.NewTemp()
	trueLabel, endLabel := translator.code.NewLabel(), translator.code.NewLabel()
	translator.code.Emit(jump, left, right, trueLabel)
	translator.code.Emit(CopyOp, FalseValue, "", temp)
	translator.code.Emit(GotoOp, "", "", endLabel)
	translator.code.EmitLabel(trueLabel)
	translator.code.Emit(CopyOp, TrueValue, "", temp)
	translator.code.EmitLabel(endLabel)
	return temp
}

// unary := ('!'|'-') unary | primary
func (translator *Translator) parseUnary() ExprResult {
	if !translator.checkAny(NotTP, MinusTP) {
		return translator.parsePrimary()
	}
	opToken := translator.lookahead
	translator.advance()
	operand := translator.parseUnary()
	op := unaryOperators[opToken.tp]
	tp, msg := op.checkUnary(operand.Type)
	if msg != "" {
		translator.semanticError(opToken, msg)
	}
	temp := translator.code.NewTemp()
	translator.code.Emit(op.mnemonic, operand.Place, "", temp)
	return ExprResult{Type: tp, Place: temp}
}

// primary := NUM | CHAR_LIT | 'true' | 'false' | ID | '(' expr ')'
func (translator *Translator) parsePrimary() ExprResult {
	token := translator.lookahead
	switch token.tp {
	case IntegerTP:
		translator.advance()
		return translator.materialize(IntType, strconv.Itoa(token.value))
	case CharacterTP:
		translator.advance()
		return translator.materialize(CharType, strconv.Itoa(token.value))
	case TrueTP:
		translator.advance()
		return translator.materialize(BoolType, TrueValue)
	case FalseTP:
		translator.advance()
		return translator.materialize(BoolType, FalseValue)
	case IdentifierTP:
		translator.advance()
		tp, ok := translator.table.Lookup(token.content)
		if !ok {
			translator.semanticError(token, fmt.Sprintf("undeclared variable '%s'", token.content))
			tp = ErrorType
		}
		return ExprResult{Type: tp, Place: token.content}
	case LeftParentThesesTP:
		translator.advance()
		inner := translator.parseExpression()
		translator.match(RightParentThesesTP, "expected ')'")
		return inner
	}
	translator.syntaxError("invalid expression")
	// Never swallow a token some enclosing rule synchronizes on.
	if !translator.checkAny(SemiColonTP, RightBraceTP, RightParentThesesTP, EOFTP) {
		translator.advance()
	}
	return ExprResult{Type: ErrorType, Place: translator.code.NewTemp()}
}

// materialize copies a literal into a fresh temporary.
func (translator *Translator) materialize(tp Type, literal string) ExprResult {
	temp := translator.code.NewTemp()
	translator.code.Emit(CopyOp, literal, "", temp)
	return ExprResult{Type: tp, Place: temp}
}
