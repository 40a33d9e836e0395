package internal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestScopeTable_Declare(t *testing.T) {
	table := NewScopeTable()
	assert.False(t, table.Declare("a", IntType), "no frame is open")
	table.EnterScope()
	assert.True(t, table.Declare("a", IntType))
	assert.True(t, table.Declare("b", CharType))
	assert.False(t, table.Declare("a", BoolType))
	tp, ok := table.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, IntType, tp)
	assert.Equal(t, []SymbolEntry{{Level: 0, Name: "a", Type: IntType}, {Level: 0, Name: "b", Type: CharType}}, table.Entries())
}

func TestScopeTable_Shadowing(t *testing.T) {
	table := NewScopeTable()
	table.EnterScope()
	table.Declare("x", IntType)
	table.EnterScope()
	assert.True(t, table.Declare("x", BoolType))
	assert.Equal(t, 2, table.Depth())
	tp, _ := table.Lookup("x")
	assert.Equal(t, BoolType, tp)
	table.ExitScope()
	tp, _ = table.Lookup("x")
	assert.Equal(t, IntType, tp)
	table.ExitScope()
	_, ok := table.Lookup("x")
	assert.False(t, ok)
	assert.Len(t, table.Entries(), 2)
	assert.Equal(t, 1, table.Entries()[1].Level)
}

func TestScopeTable_InnerNamesAreDiscarded(t *testing.T) {
	table := NewScopeTable()
	table.EnterScope()
	table.EnterScope()
	table.Declare("inner", CharType)
	table.ExitScope()
	_, ok := table.Lookup("inner")
	assert.False(t, ok)
	// The same name is new again in a later sibling block.
	table.EnterScope()
	assert.True(t, table.Declare("inner", IntType))
}

func TestScopeTable_ExitScopeOnEmptyTable(t *testing.T) {
	table := NewScopeTable()
	table.ExitScope()
	table.ExitScope()
	assert.Equal(t, 0, table.Depth())
	table.EnterScope()
	assert.Equal(t, 1, table.Depth())
}

func TestScopeTable_Dump(t *testing.T) {
	table := NewScopeTable()
	table.EnterScope()
	table.Declare("x", IntType)
	table.EnterScope()
	table.Declare("flag", BoolType)
	expected := "SYMBOL TABLE (insertions order)\n" +
		"--------------------------------\n" +
		"SCOPE 0  x            : INT\n" +
		"SCOPE 1  flag         : BOOL\n"
	assert.Equal(t, expected, table.Dump())
}
