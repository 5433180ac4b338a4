package results

import (
	"sort"

	"github.com/umvarma/gonastran/types"
)

/*
Accumulator owns every result table decoded from one file. It is created for
a read and handed to the caller when the read finishes; nothing else holds on
to it.
*/
type Accumulator struct {
	Policy    DuplicatePolicy
	tables    map[string]*Table
	finalized bool
}

func NewAccumulator(policy DuplicatePolicy) *Accumulator {
	return &Accumulator{
		Policy: policy,
		tables: make(map[string]*Table),
	}
}

// Table returns the table for kind, creating it when missing.
func (a *Accumulator) Table(kind string) (t *Table) {
	var ok bool
	if t, ok = a.tables[kind]; !ok {
		t = NewTable(kind)
		if a.finalized {
			t.buildIndex()
		}
		a.tables[kind] = t
	}
	return
}

// Lookup returns the table for kind without creating it.
func (a *Accumulator) Lookup(kind string) (t *Table, ok bool) {
	t, ok = a.tables[kind]
	return
}

// Insert stores row under (kind, key, id) following the duplicate policy.
func (a *Accumulator) Insert(kind string, key types.ResultKey, id int, row Row) error {
	return a.Table(kind).insert(key, id, row, a.Policy)
}

// SetHeader records the header metadata of key; the first header wins.
func (a *Accumulator) SetHeader(kind string, key types.ResultKey, h Header) {
	a.Table(kind).setHeader(key, h)
}

// Kinds lists the result kinds present, sorted.
func (a *Accumulator) Kinds() (kinds []string) {
	kinds = make([]string, 0, len(a.tables))
	for kind := range a.tables {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return
}

// Len is the total number of rows across all tables and keys.
func (a *Accumulator) Len() (n int) {
	for _, t := range a.tables {
		for _, rows := range t.data {
			n += len(rows)
		}
	}
	return
}

// Finalize builds the sorted id indexes. Rows inserted afterwards keep the
// indexes current.
func (a *Accumulator) Finalize() {
	for _, t := range a.tables {
		t.buildIndex()
	}
	a.finalized = true
}

func (a *Accumulator) Finalized() bool { return a.finalized }
