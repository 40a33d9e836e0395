package internal

import (
	"fmt"
	"strings"
)

// ScopeTable is a stack of frames, each frame maps a name to its type. A name appears at most
// once per frame, an inner frame may shadow a name of an outer one.
type ScopeTable struct {
	frames []map[string]Type
	// Every successful declaration in insertion order, kept after its frame is popped.
	history []SymbolEntry
}

type SymbolEntry struct {
	Level int // 0 is the outermost block.
	Name  string
	Type  Type
}

func (entry SymbolEntry) String() string {
	return fmt.Sprintf("SCOPE %d  %-12s : %s", entry.Level, entry.Name, entry.Type)
}

func NewScopeTable() *ScopeTable {
	return &ScopeTable{}
}

func (table *ScopeTable) EnterScope() {
	table.frames = append(table.frames, map[string]Type{})
	T().Debugf("scope: enter level %d", len(table.frames)-1)
}

// ExitScope pops the top frame, popping an empty table does nothing.
func (table *ScopeTable) ExitScope() {
	if len(table.frames) == 0 {
		return
	}
	table.frames = table.frames[:len(table.frames)-1]
	T().Debugf("scope: exit to level %d", len(table.frames)-1)
}

// Depth is the number of open frames.
func (table *ScopeTable) Depth() int {
	return len(table.frames)
}

// Declare returns false and changes nothing if name is already declared in the top frame,
// or if there is no frame at all.
func (table *ScopeTable) Declare(name string, tp Type) bool {
	if len(table.frames) == 0 {
		return false
	}
	top := table.frames[len(table.frames)-1]
	if _, ok := top[name]; ok {
		return false
	}
	top[name] = tp
	table.history = append(table.history, SymbolEntry{Level: len(table.frames) - 1, Name: name, Type: tp})
	return true
}

// Lookup searches from the innermost frame to the outermost one.
func (table *ScopeTable) Lookup(name string) (Type, bool) {
	for i := len(table.frames) - 1; i >= 0; i-- {
		if tp, ok := table.frames[i][name]; ok {
			return tp, true
		}
	}
	return ErrorType, false
}

func (table *ScopeTable) Entries() []SymbolEntry {
	return table.history
}

// Dump renders the declaration log, this is the content of symbols.txt.
func (table *ScopeTable) Dump() string {
	sb := strings.Builder{}
	sb.WriteString("SYMBOL TABLE (insertions order)\n")
	sb.WriteString("--------------------------------\n")
	for _, entry := range table.history {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
