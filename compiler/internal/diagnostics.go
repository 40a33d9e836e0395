package internal

import "fmt"

type DiagnosticKind int

const (
	LexicalKind DiagnosticKind = iota
	SyntaxKind
	SemanticKind
)

func (kind DiagnosticKind) String() string {
	switch kind {
	case LexicalKind:
		return "LEX"
	case SyntaxKind:
		return "SYN"
	case SemanticKind:
		return "SEM"
	}
	return "???"
}

type Diagnostic struct {
	Line    int
	Column  int
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d  [%s] %s", d.Line, d.Column, d.Kind, d.Message)
}

// Reporter accepts positioned messages. Reporting never fails and the order of reports is kept.
type Reporter interface {
	Report(kind DiagnosticKind, line, column int, msg string)
}

// Diagnostics is the default Reporter, it simply accumulates everything.
type Diagnostics struct {
	diagnostics []Diagnostic
}

func (diagnostics *Diagnostics) Report(kind DiagnosticKind, line, column int, msg string) {
	diagnostics.diagnostics = append(diagnostics.diagnostics, Diagnostic{Line: line, Column: column, Kind: kind, Message: msg})
}

func (diagnostics *Diagnostics) All() []Diagnostic {
	return diagnostics.diagnostics
}

func (diagnostics *Diagnostics) HasErrors() bool {
	return len(diagnostics.diagnostics) > 0
}

func (diagnostics *Diagnostics) Count(kind DiagnosticKind) int {
	ret := 0
	for _, d := range diagnostics.diagnostics {
		if d.Kind == kind {
			ret++
		}
	}
	return ret
}

func (diagnostics *Diagnostics) Lines() []string {
	lines := make([]string, 0, len(diagnostics.diagnostics))
	for _, d := range diagnostics.diagnostics {
		lines = append(lines, d.String())
	}
	return lines
}
