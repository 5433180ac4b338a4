package results

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/btree"
	"gonum.org/v1/gonum/mat"

	"github.com/umvarma/gonastran/types"
)

type DuplicatePolicy uint8

const (
	Reject DuplicatePolicy = iota
	KeepFirst
	Overwrite
)

var duplicatePolicyNames = map[string]DuplicatePolicy{
	"reject":    Reject,
	"keepfirst": KeepFirst,
	"first":     KeepFirst,
	"overwrite": Overwrite,
	"last":      Overwrite,
}

func (dp DuplicatePolicy) String() string {
	switch dp {
	case Reject:
		return "reject"
	case KeepFirst:
		return "keepfirst"
	case Overwrite:
		return "overwrite"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", uint8(dp))
}

// ParseDuplicatePolicy accepts reject, keepfirst (first) and overwrite (last).
// The empty string is Reject.
func ParseDuplicatePolicy(label string) (dp DuplicatePolicy, err error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return Reject, nil
	}
	var ok bool
	if dp, ok = duplicatePolicyNames[label]; !ok {
		err = fmt.Errorf("unknown duplicate policy %q", label)
	}
	return
}

var ErrDuplicateEntity = errors.New("duplicate entity id")

// DuplicateEntityError means an id arrived twice under one key: the file is
// corrupt or a record was decoded with the wrong layout.
type DuplicateEntityError struct {
	Kind string
	Key  types.ResultKey
	ID   int
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%v: %s %s id %d", ErrDuplicateEntity, e.Kind, e.Key, e.ID)
}

func (e *DuplicateEntityError) Is(target error) bool { return target == ErrDuplicateEntity }

// NodeRow holds the values at one grid of a multi-node element.
type NodeRow struct {
	Grid    int
	Values  []float64
	Complex []complex128
}

// Row is the decoded data of one entity. Real results fill Values, complex
// results fill Complex; some element records carry integer or real words
// alongside complex pairs, those go to Values.
type Row struct {
	GridType int
	Values   []float64
	Complex  []complex128
	Nodes    []NodeRow
}

func (r Row) IsComplex() bool { return len(r.Complex) > 0 }

// Header is the metadata of the table header that produced one key.
type Header struct {
	Table        string
	AnalysisCode int
	ElementType  int
	Title        string
	Subtitle     string
	Label        string
	Eigenvalues  []float64
}

// Table holds one kind of result: key -> entity id -> row.
type Table struct {
	Kind    string
	data    map[types.ResultKey]map[int]Row
	headers map[types.ResultKey]Header
	index   map[types.ResultKey]*btree.BTreeG[int]
}

func NewTable(kind string) *Table {
	return &Table{
		Kind:    kind,
		data:    make(map[types.ResultKey]map[int]Row),
		headers: make(map[types.ResultKey]Header),
	}
}

func newIDIndex() *btree.BTreeG[int] {
	return btree.NewG(32, func(a, b int) bool { return a < b })
}

func (t *Table) insert(key types.ResultKey, id int, row Row, policy DuplicatePolicy) (err error) {
	rows, ok := t.data[key]
	if !ok {
		rows = make(map[int]Row)
		t.data[key] = rows
	}
	if _, exists := rows[id]; exists {
		switch policy {
		case KeepFirst:
			return
		case Overwrite:
		default:
			return &DuplicateEntityError{Kind: t.Kind, Key: key, ID: id}
		}
	}
	rows[id] = row
	if t.index != nil {
		idx, ok := t.index[key]
		if !ok {
			idx = newIDIndex()
			t.index[key] = idx
		}
		idx.ReplaceOrInsert(id)
	}
	return
}

// buildIndex builds the ascending id index of every key.
func (t *Table) buildIndex() {
	t.index = make(map[types.ResultKey]*btree.BTreeG[int], len(t.data))
	for key, rows := range t.data {
		idx := newIDIndex()
		for id := range rows {
			idx.ReplaceOrInsert(id)
		}
		t.index[key] = idx
	}
}

// Keys returns every key, ordered by subcase then factor.
func (t *Table) Keys() (keys []types.ResultKey) {
	keys = make([]types.ResultKey, 0, len(t.data))
	for key := range t.data {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return
}

// Len is the number of entities stored under key.
func (t *Table) Len(key types.ResultKey) int { return len(t.data[key]) }

// Rows returns the id -> row map of one key. The map must not be modified.
func (t *Table) Rows(key types.ResultKey) map[int]Row { return t.data[key] }

func (t *Table) Get(key types.ResultKey, id int) (row Row, ok bool) {
	row, ok = t.data[key][id]
	return
}

func (t *Table) Header(key types.ResultKey) (h Header, ok bool) {
	h, ok = t.headers[key]
	return
}

func (t *Table) setHeader(key types.ResultKey, h Header) {
	if _, ok := t.headers[key]; !ok {
		t.headers[key] = h
	}
}

// Ascend calls fn for each entity of key in ascending id order until fn
// returns false.
func (t *Table) Ascend(key types.ResultKey, fn func(id int, row Row) bool) {
	rows := t.data[key]
	if idx, ok := t.index[key]; ok {
		idx.Ascend(func(id int) bool { return fn(id, rows[id]) })
		return
	}
	for _, id := range sortedIDs(rows) {
		if !fn(id, rows[id]) {
			return
		}
	}
}

// IDs returns the entity ids of key in ascending order.
func (t *Table) IDs(key types.ResultKey) (ids []int) {
	ids = make([]int, 0, len(t.data[key]))
	t.Ascend(key, func(id int, _ Row) bool {
		ids = append(ids, id)
		return true
	})
	return
}

func sortedIDs(rows map[int]Row) (ids []int) {
	ids = make([]int, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

// Matrix stacks the real values of key into an [entities x values] matrix,
// rows in ascending id order.
func (t *Table) Matrix(key types.ResultKey) (M *mat.Dense, ids []int, err error) {
	var (
		ncols = -1
		data  []float64
	)
	t.Ascend(key, func(id int, row Row) bool {
		if ncols < 0 {
			ncols = len(row.Values)
		}
		if len(row.Values) != ncols {
			err = fmt.Errorf("%s %s: id %d has %d values, expected %d", t.Kind, key, id, len(row.Values), ncols)
			return false
		}
		ids = append(ids, id)
		data = append(data, row.Values...)
		return true
	})
	if err != nil || len(ids) == 0 || ncols == 0 {
		ids = nil
		return
	}
	M = mat.NewDense(len(ids), ncols, data)
	return
}

// ComplexMatrix is Matrix for complex results.
func (t *Table) ComplexMatrix(key types.ResultKey) (M *mat.CDense, ids []int, err error) {
	var (
		ncols = -1
		data  []complex128
	)
	t.Ascend(key, func(id int, row Row) bool {
		if ncols < 0 {
			ncols = len(row.Complex)
		}
		if len(row.Complex) != ncols {
			err = fmt.Errorf("%s %s: id %d has %d complex values, expected %d", t.Kind, key, id, len(row.Complex), ncols)
			return false
		}
		ids = append(ids, id)
		data = append(data, row.Complex...)
		return true
	})
	if err != nil || len(ids) == 0 || ncols == 0 {
		ids = nil
		return
	}
	M = mat.NewCDense(len(ids), ncols, data)
	return
}
