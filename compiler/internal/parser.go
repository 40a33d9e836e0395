package internal

import "fmt"

// Translator is a predictive recursive descent parser which checks and generates code while it
// recognizes the program. There is no tree and no second pass: every procedure below parses one
// non-terminal, consults the scope table and emits the code of its construct before it returns.
//
// program  := 'program' block EOF
// block    := '{' decl* stmt* '}'
// decl     := type ID ';'
// stmt     := assign ';' | print ';' | if | while | block
// assign   := ID '=' expr
// print    := 'print' '(' expr ')'
// if       := 'if' '(' expr ')' stmt [ 'else' stmt ]
// while    := 'while' '(' expr ')' stmt
//
// The expression part of the grammar lives in expression.go.
//
// A Translator is single use: build it, call ParseProgram once, read the table and the code.
type Translator struct {
	source   TokenSource
	reporter Reporter
	table    *ScopeTable
	code     *CodeBuilder

	lookahead *Token
	previous  *Token // the last consumed token.
	// Set by a syntax error, cleared by the next successful match and at the start of every
	// declaration or statement. Syntax errors found while set are not reported, they are the
	// same error seen again.
	recovering bool
	// The recovery consumed the ';' of the current declaration or statement.
	terminated bool
}

func NewTranslator(source TokenSource, reporter Reporter, table *ScopeTable, code *CodeBuilder) *Translator {
	translator := &Translator{source: source, reporter: reporter, table: table, code: code}
	translator.advance()
	return translator
}

func (translator *Translator) ParseProgram() {
	T().Debugf("translator: start program at %d:%d", translator.lookahead.line, translator.lookahead.column)
	// A missing 'program' is reported but nothing is skipped, the block is most likely right here.
	if translator.check(ProgramTP) {
		translator.advance()
	} else {
		translator.syntaxError("expected 'program'")
	}
	translator.parseBlock()
	translator.match(EOFTP, "expected end of input after the program")
}

// advance moves to the next token. Error tokens are reported as lexical errors and skipped here,
// so the grammar never sees them.
func (translator *Translator) advance() {
	translator.previous = translator.lookahead
	translator.lookahead = translator.source.NextToken()
	for translator.lookahead.tp == ErrorTP {
		translator.reporter.Report(LexicalKind, translator.lookahead.line, translator.lookahead.column,
			fmt.Sprintf("%s: '%s'", translator.lookahead.msg, translator.lookahead.content))
		translator.lookahead = translator.source.NextToken()
	}
}

func (translator *Translator) check(tp TokenType) bool {
	return translator.lookahead.tp == tp
}

func (translator *Translator) checkAny(tps ...TokenType) bool {
	for _, tp := range tps {
		if translator.check(tp) {
			return true
		}
	}
	return false
}

// match consumes the expected token, otherwise reports a syntax error and recovers. It returns
// whether the token was there.
func (translator *Translator) match(tp TokenType, msg string) bool {
	if translator.check(tp) {
		translator.advance()
		translator.recovering = false
		return true
	}
	translator.syntaxError(msg)
	translator.panicRecover(tp)
	return false
}

// matchTerminator is match for the ';' closing a statement or declaration. A recovery inside the
// statement may already have consumed it.
func (translator *Translator) matchTerminator(msg string) {
	if translator.terminated {
		return
	}
	translator.match(SemiColonTP, msg)
}

func (translator *Translator) syntaxError(msg string) {
	if translator.recovering {
		T().Debugf("translator: suppressed syntax error at %d:%d: %s", translator.lookahead.line, translator.lookahead.column, msg)
		return
	}
	translator.recovering = true
	translator.reporter.Report(SyntaxKind, translator.lookahead.line, translator.lookahead.column,
		fmt.Sprintf("%s (found: %s '%s')", msg, translator.lookahead.tp, translator.lookahead.content))
}

func (translator *Translator) semanticError(token *Token, msg string) {
	translator.reporter.Report(SemanticKind, token.line, token.column, msg)
}

// panicRecover skips tokens until expected, a ';' or a '}' shows up, whichever comes first, and
// consumes it when it is expected or ';'. A '{ ... }' met on the way is skipped as a whole so
// only a '}' closing the current block stops the recovery.
func (translator *Translator) panicRecover(expected TokenType) {
	depth := 0
	for !translator.check(EOFTP) {
		if depth == 0 && translator.checkAny(expected, SemiColonTP, RightBraceTP) {
			break
		}
		switch translator.lookahead.tp {
		case LeftBraceTP:
			depth++
		case RightBraceTP:
			depth--
		}
		translator.advance()
	}
	if translator.check(expected) || translator.check(SemiColonTP) {
		translator.terminated = translator.check(SemiColonTP)
		translator.advance()
	}
}

// beginStatement starts a declaration or statement: an error before it never silences its errors.
func (translator *Translator) beginStatement() {
	translator.recovering, translator.terminated = false, false
}

// block := '{' decl* stmt* '}'
// The scope lives exactly as long as this call, whatever the tokens look like.
func (translator *Translator) parseBlock() {
	translator.match(LeftBraceTP, "expected '{'")
	translator.table.EnterScope()
	defer translator.table.ExitScope()
	translator.parseDeclarations()
	translator.parseStatements()
	translator.match(RightBraceTP, "expected '}'")
}

func (translator *Translator) parseDeclarations() {
	for isTypeToken(translator.lookahead.tp) {
		translator.parseDeclaration()
	}
}

// decl := type ID ';'
func (translator *Translator) parseDeclaration() {
	translator.beginStatement()
	tp := typeOfTypeToken(translator.lookahead.tp)
	translator.advance()
	name := translator.lookahead
	if !translator.match(IdentifierTP, "expected an identifier in declaration") {
		return
	}
	if !translator.table.Declare(name.content, tp) {
		translator.semanticError(name, fmt.Sprintf("'%s' is already declared in this block", name.content))
	} else {
		T().Debugf("translator: declared %s %s at level %d", tp, name.content, translator.table.Depth()-1)
	}
	translator.matchTerminator("missing ';' at the end of the declaration")
}

func (translator *Translator) parseStatements() {
	for !translator.check(RightBraceTP) && !translator.check(EOFTP) {
		translator.parseStatement()
	}
}

// stmt := assign ';' | print ';' | if | while | block
func (translator *Translator) parseStatement() {
	translator.beginStatement()
	switch translator.lookahead.tp {
	case IdentifierTP:
		translator.parseAssign()
		translator.matchTerminator("missing ';' at the end of the assignment")
	case PrintTP:
		translator.parsePrint()
		translator.matchTerminator("missing ';' at the end of print")
	case IfTP:
		translator.parseIf()
	case WhileTP:
		translator.parseWhile()
	case LeftBraceTP:
		translator.parseBlock()
	default:
		if isTypeToken(translator.lookahead.tp) {
			translator.syntaxError("declarations must precede the statements of a block")
		} else {
			translator.syntaxError("invalid start of statement")
		}
		translator.panicRecover(SemiColonTP)
	}
}

// statementAborted reports whether a recovery inside the current statement already ran to its end.
func (translator *Translator) statementAborted() bool {
	if translator.terminated {
		return true
	}
	return translator.recovering && (translator.check(RightBraceTP) || translator.check(EOFTP))
}

// assign := ID '=' expr
// copy value _ name
func (translator *Translator) parseAssign() {
	name := translator.lookahead
	translator.advance()
	declared, ok := translator.table.Lookup(name.content)
	if !ok {
		translator.semanticError(name, fmt.Sprintf("undeclared variable '%s'", name.content))
		declared = ErrorType
	}
	if !translator.match(AssignTP, "expected '=' in assignment") {
		return
	}
	value := translator.parseExpression()
	if msg := checkAssign(name.content, declared, value.Type); msg != "" {
		translator.semanticError(name, msg)
	}
	translator.code.Emit(CopyOp, value.Place, "", name.content)
}

// print := 'print' '(' expr ')'
func (translator *Translator) parsePrint() {
	keyword := translator.lookahead
	translator.advance()
	if !translator.match(LeftParentThesesTP, "expected '(' after print") {
		return
	}
	value := translator.parseExpression()
	translator.match(RightParentThesesTP, "expected ')' in print")
	T().Debugf("translator: print %s at %d:%d", value.Type, keyword.line, keyword.column)
	translator.code.Emit(PrintOp, value.Place, "", "")
}

// parseCondition parses '(' expr ')' of if and while. It returns false when the statement
// cannot go on.
func (translator *Translator) parseCondition(keyword *Token) (ExprResult, bool) {
	if !translator.match(LeftParentThesesTP, fmt.Sprintf("expected '(' after %s", keyword.content)) {
		return ExprResult{}, false
	}
	cond := translator.parseExpression()
	if msg := checkCondition(keyword.content, cond.Type); msg != "" {
		translator.semanticError(keyword, msg)
	}
	translator.match(RightParentThesesTP, "expected ')' after condition")
	return cond, true
}

// if := 'if' '(' expr ')' stmt [ 'else' stmt ]
//
//	cond code
//	jeq cond 0 Lelse
//	then code
//	goto Lend        only with else
//	skip Lelse
//	else code        only with else
//	skip Lend        only with else
func (translator *Translator) parseIf() {
	keyword := translator.lookahead
	translator.advance()
	cond, ok := translator.parseCondition(keyword)
	if !ok {
		return
	}
	elseLabel := translator.code.NewLabel()
	translator.code.Emit(JeqOp, cond.Place, FalseValue, elseLabel)
	if !translator.statementAborted() {
		translator.parseStatement()
	}
	if !translator.check(ElseTP) {
		translator.code.EmitLabel(elseLabel)
		return
	}
	endLabel := translator.code.NewLabel()
	translator.code.Emit(GotoOp, "", "", endLabel)
	translator.code.EmitLabel(elseLabel)
	translator.advance()
	translator.parseStatement()
	translator.code.EmitLabel(endLabel)
}

// while := 'while' '(' expr ')' stmt
//
//	skip Lstart
//	cond code
//	jeq cond 0 Lend
//	body code
//	goto Lstart
//	skip Lend
func (translator *Translator) parseWhile() {
	keyword := translator.lookahead
	translator.advance()
	startLabel, endLabel := translator.code.NewLabel(), translator.code.NewLabel()
	translator.code.EmitLabel(startLabel)
	cond, ok := translator.parseCondition(keyword)
	if !ok {
		translator.code.EmitLabel(endLabel)
		return
	}
	translator.code.Emit(JeqOp, cond.Place, FalseValue, endLabel)
	if !translator.statementAborted() {
		translator.parseStatement()
	}
	translator.code.Emit(GotoOp, "", "", startLabel)
	translator.code.EmitLabel(endLabel)
}
