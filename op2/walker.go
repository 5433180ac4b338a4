package op2

import (
	"errors"
	"fmt"

	"github.com/umvarma/gonastran/fortran"
	"github.com/umvarma/gonastran/results"
)

type walkState uint8

const (
	stateSeekTable walkState = iota
	stateReadHeader
	stateReadData
	stateDone
)

var errFilteredKind = errors.New("result kind not requested")

// tablePlan is what to do with the data sub-records that follow a header.
type tablePlan struct {
	dc   *DataCode
	ctx  *recordContext
	fn   decodeFunc
	skip error
	warn bool
}

/*
walker drives the cursor through the table protocol:

	name, [-1,7], trailer, [-2,1,0], name
	[-3,1,0] header
	[-4,1,0] data, [-5,1,0] data, ...
	[k,1,0] [0]

A lone [0] where a table name is expected ends the file.
*/
type walker struct {
	c       *fortran.Cursor
	opts    Options
	acc     *results.Accumulator
	res     *Result
	state   walkState
	table   *TableInfo
	plan    tablePlan
	counter int32
}

func (w *walker) run() (err error) {
	if err = w.preamble(); err != nil {
		return w.fail(err)
	}
	for w.state != stateDone {
		switch w.state {
		case stateSeekTable:
			err = w.seekTable()
		case stateReadHeader:
			err = w.readHeader()
		case stateReadData:
			err = w.readData()
		}
		if err != nil {
			return w.fail(err)
		}
	}
	return
}

func (w *walker) fail(err error) error {
	var re *ReadError
	if errors.As(err, &re) {
		return re
	}
	re = &ReadError{Offset: w.c.Tell(), Err: err}
	if w.table != nil {
		re.Table = w.table.Name
	}
	var fe *fortran.FormatError
	if errors.As(err, &fe) {
		re.Offset = fe.Offset
	}
	return re
}

func (w *walker) warn(offset int64, err error) {
	w.res.Warnings = append(w.res.Warnings, Warning{
		Table:     w.table.Name,
		SubRecord: w.counter,
		Offset:    offset,
		Err:       err,
	})
}

// preamble consumes the optional tape code or label record at the start of
// the file.
func (w *walker) preamble() (err error) {
	if w.c.AtEOF() {
		w.state = stateDone
		return
	}
	var n int32
	if n, err = w.c.PeekLength(); err != nil {
		return
	}
	switch n {
	case 24:
		w.res.File.Label, err = w.c.ReadString()
	case 4:
		var v []int32
		if v, err = w.c.PeekMarkers(1); err != nil {
			return
		}
		if v[0] == 3 {
			err = w.tapeCode()
		}
	}
	return
}

// [3] date [7] tape id [2] label [-1] [0]
func (w *walker) tapeCode() (err error) {
	fh := &w.res.File
	if err = w.c.ReadMarkers(3); err != nil {
		return
	}
	if fh.Date, err = w.c.ReadInts(); err != nil {
		return
	}
	if err = w.c.ReadMarkers(7); err != nil {
		return
	}
	if fh.TapeID, err = w.c.ReadString(); err != nil {
		return
	}
	if err = w.c.ReadMarkers(2); err != nil {
		return
	}
	if fh.Label, err = w.c.ReadString(); err != nil {
		return
	}
	if err = w.c.ReadMarkers(-1, 0); err != nil {
		return
	}
	fh.TapeCode = true
	return
}

func (w *walker) seekTable() (err error) {
	w.table, w.plan = nil, tablePlan{}
	if w.c.AtEOF() {
		w.state = stateDone
		return
	}
	var (
		n     int32
		start = w.c.Tell()
	)
	if n, err = w.c.PeekLength(); err != nil {
		return
	}
	if n == 4 {
		var v int32
		if v, err = w.c.ReadMarker(); err != nil {
			return
		}
		if v != 0 {
			_ = w.c.Goto(start)
			return &fortran.FormatError{Offset: start, Err: &fortran.UnexpectedMarkerError{
				Expected: []int32{0}, Actual: []int32{v},
			}}
		}
		w.state = stateDone
		return
	}
	ti := TableInfo{Offset: start}
	if ti.Name, err = w.c.ReadString(); err != nil {
		return
	}
	ti.Family = FamilyOf(ti.Name)
	w.table = &ti
	if err = w.c.ReadMarkers(-1, 7); err != nil {
		return
	}
	if ti.Trailer, err = w.c.ReadInts(); err != nil {
		return
	}
	if err = w.c.ReadMarkers(-2, 1, 0); err != nil {
		return
	}
	if _, err = w.c.ReadString(); err != nil {
		return
	}
	w.res.Tables = append(w.res.Tables, ti)
	w.table = &w.res.Tables[len(w.res.Tables)-1]
	w.res.Stats.Tables++
	w.state = stateReadHeader
	return
}

// counterMarkers reads [counter,1,0]. A different counter breaks the
// strictly decreasing sequence and is fatal.
func (w *walker) counterMarkers() (err error) {
	var (
		v     int32
		start = w.c.Tell()
	)
	if v, err = w.c.ReadMarker(); err != nil {
		return
	}
	if v != w.counter {
		_ = w.c.Goto(start)
		return &fortran.FormatError{Offset: start, Err: fmt.Errorf("%w: %w", ErrCounterSequence,
			&fortran.UnexpectedMarkerError{Expected: []int32{w.counter, 1, 0}, Actual: []int32{v}})}
	}
	return w.c.ReadMarkers(1, 0)
}

func (w *walker) readHeader() (err error) {
	w.counter = -3
	if err = w.counterMarkers(); err != nil {
		return
	}
	if err = w.header(); err != nil {
		return
	}
	w.counter = -4
	w.state = stateReadData
	return
}

func (w *walker) readData() (err error) {
	if err = w.counterMarkers(); err != nil {
		return
	}
	var n int32
	if n, err = w.c.PeekLength(); err != nil {
		return
	}
	if n == 4 {
		var v []int32
		if v, err = w.c.PeekMarkers(1); err != nil {
			return
		}
		if v[0] == 0 {
			if _, err = w.c.ReadMarker(); err != nil {
				return
			}
			w.state = stateSeekTable
			return
		}
	}
	if w.opts.RepeatedHeaders && w.counter%2 != 0 {
		err = w.header()
	} else {
		err = w.data()
	}
	w.counter--
	return
}

// header reads one header block and replaces the plan of the table.
func (w *walker) header() (err error) {
	start := w.c.Tell()
	w.table.SubRecords++
	if w.table.Family == FamilyUnknown {
		if _, err = w.c.SkipBlock(); err != nil {
			return
		}
		if w.plan.skip == nil {
			w.plan = tablePlan{skip: fmt.Errorf("%w: %s", ErrUnsupportedTable, w.table.Name)}
			w.warn(start, w.plan.skip)
		}
		return
	}
	var (
		payload []byte
		dc      *DataCode
	)
	if payload, err = w.c.ReadBlock(); err != nil {
		return
	}
	if dc, err = ResolveDataCode(w.table.Name, w.table.Family, payload, w.c.Order()); err != nil {
		return &ReadError{Table: w.table.Name, Offset: start, Err: err}
	}
	if w.plan, err = w.newPlan(dc); err != nil {
		return &ReadError{Table: w.table.Name, Offset: start, Err: err}
	}
	return
}

func (w *walker) newPlan(dc *DataCode) (plan tablePlan, err error) {
	plan.dc = dc
	kind, err := dc.ResultKind()
	if err == nil {
		if !w.opts.wants(kind) {
			plan.skip = errFilteredKind
			return
		}
		plan.fn, err = lookupDecoder(dc)
	}
	if err != nil {
		if w.opts.StrictUnsupported {
			return
		}
		plan.fn, plan.skip, plan.warn, err = nil, err, true, nil
		return
	}
	plan.ctx = &recordContext{
		dc:    dc,
		order: w.c.Order(),
		keys:  newKeyStrategy(dc),
		kind:  kind,
		acc:   w.acc,
	}
	return
}

// data decodes or skips one data block.
func (w *walker) data() (err error) {
	start := w.c.Tell()
	w.table.SubRecords++
	w.res.Stats.SubRecords++
	if w.plan.fn == nil {
		var n int
		if n, err = w.c.SkipBlock(); err != nil {
			return
		}
		w.table.Skipped++
		w.res.Stats.Skipped++
		w.res.Stats.BytesSkipped += int64(n)
		if w.plan.warn {
			w.warn(start, w.plan.skip)
		}
		return
	}
	var payload []byte
	if payload, err = w.c.ReadBlock(); err != nil {
		return
	}
	ctx := w.plan.ctx
	before := ctx.rows
	if err = w.plan.fn(ctx, payload); err != nil {
		if errors.Is(err, ErrPartialEntry) {
			return &fortran.FormatError{Offset: start, Err: err}
		}
		return &ReadError{Table: w.table.Name, Offset: start, Err: err}
	}
	w.table.Decoded++
	w.res.Stats.Decoded++
	w.res.Stats.Rows += ctx.rows - before
	return
}
