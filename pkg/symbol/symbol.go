// Package symbol interns symbol names so that symbol values can be compared
// and stored as small integers.
package symbol

import (
	"fmt"
	"sort"
	"sync"
)

// ID identifies an interned symbol.  The zero ID is never produced by a
// Table.
type ID uint32

// String returns the name of id in DefaultTable, or a diagnostic string when
// id was never interned there.
func (id ID) String() string {
	return Name(id, DefaultTable)
}

// DefaultTable is the process-wide symbol table.  Values constructed by
// package lisp intern their names here.
var DefaultTable = NewTable()

// Intern uses DefaultTable to intern s and returns its ID.
func Intern(s string) ID {
	return DefaultTable.Intern(s)
}

// Name returns the string interned as id in table.  Unknown ids are rendered
// as "#<SYMBOL 0x..>".
func Name(id ID, table Table) string {
	s, ok := table.Symbol(id)
	if !ok {
		return fmt.Sprintf("#<SYMBOL %#x>", uint32(id))
	}
	return s
}

// Table maps symbol IDs to strings.
type Table interface {
	// Len returns the number of symbols interned in the table.
	Len() int
	// Intern inserts the given symbol into the table if it is not present and
	// returns its ID.
	Intern(symbol string) ID
	// Peek retrieves the ID of a symbol without automatically interning it.
	// Peek returns true iff the symbol has been interned into the table.
	Peek(symbol string) (ID, bool)
	// Symbol returns the symbol associated with id.
	Symbol(id ID) (string, bool)
	// Export returns every interned symbol sorted by name.
	Export() []TableRow
}

// TableRow is one entry exported from a Table.
type TableRow struct {
	Symbol string
	ID     ID
}

// NewTable returns an empty Table that is safe for concurrent use.
func NewTable() Table {
	return &table{
		i: make(map[ID]string),
		s: make(map[string]ID),
	}
}

type table struct {
	sync   sync.RWMutex
	lastid ID
	i      map[ID]string
	s      map[string]ID
}

var _ Table = (*table)(nil)

// Len implements the Table interface
func (t *table) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.s)
}

// Intern implements the Table interface
func (t *table) Intern(s string) ID {
	t.sync.RLock()
	id, ok := t.s[s]
	t.sync.RUnlock()
	if ok {
		return id
	}
	t.sync.Lock()
	defer t.sync.Unlock()
	if id, ok := t.s[s]; ok {
		return id
	}
	t.lastid++
	id = t.lastid
	t.s[s] = id
	t.i[id] = s
	return id
}

// Peek implements the Table interface
func (t *table) Peek(s string) (ID, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	id, ok := t.s[s]
	return id, ok
}

// Symbol implements the Table interface
func (t *table) Symbol(id ID) (string, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	s, ok := t.i[id]
	return s, ok
}

// Export implements the Table interface
func (t *table) Export() []TableRow {
	t.sync.RLock()
	r := make([]TableRow, 0, len(t.s))
	for sym, id := range t.s {
		r = append(r, TableRow{Symbol: sym, ID: id})
	}
	t.sync.RUnlock()
	sort.Slice(r, func(i, j int) bool { return r[i].Symbol < r[j].Symbol })
	return r
}
