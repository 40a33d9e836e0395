package internal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDiagnostics_Report(t *testing.T) {
	diagnostics := &Diagnostics{}
	assert.False(t, diagnostics.HasErrors())
	diagnostics.Report(SyntaxKind, 3, 4, "expected '{'")
	diagnostics.Report(SemanticKind, 1, 2, "undeclared variable 'y'")
	diagnostics.Report(SemanticKind, 5, 1, "undeclared variable 'z'")
	assert.True(t, diagnostics.HasErrors())
	assert.Equal(t, 0, diagnostics.Count(LexicalKind))
	assert.Equal(t, 1, diagnostics.Count(SyntaxKind))
	assert.Equal(t, 2, diagnostics.Count(SemanticKind))
	// Call order, not position order.
	assert.Equal(t, []string{
		"3:4  [SYN] expected '{'",
		"1:2  [SEM] undeclared variable 'y'",
		"5:1  [SEM] undeclared variable 'z'",
	}, diagnostics.Lines())
}
