package op2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/umvarma/gonastran/fortran"
	"github.com/umvarma/gonastran/results"
)

// Options control what a read keeps and how strict it is.
type Options struct {
	// StrictUnsupported makes unknown element types and num_wide values
	// fatal instead of skipped with a warning.
	StrictUnsupported bool
	Duplicates        results.DuplicatePolicy
	// ResultKinds limits decoding to these kinds; empty means all.
	ResultKinds []string
	// RepeatedHeaders treats odd sub-table counters after -3 as headers.
	RepeatedHeaders bool
}

func (o Options) wants(kind string) bool {
	if len(o.ResultKinds) == 0 {
		return true
	}
	for _, k := range o.ResultKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// FileHeader is what the preamble says about the file.
type FileHeader struct {
	TapeCode bool
	Date     []int32
	TapeID   string
	Label    string
}

// TableInfo describes one table as it was walked.
type TableInfo struct {
	Name       string
	Offset     int64
	Family     Family
	Trailer    []int32
	SubRecords int
	Decoded    int
	Skipped    int
}

type Stats struct {
	Bytes        int64
	Tables       int
	SubRecords   int
	Decoded      int
	Skipped      int
	BytesSkipped int64
	Rows         int
}

type Result struct {
	ID       string
	Order    binary.ByteOrder
	File     FileHeader
	Results  *results.Accumulator
	Warnings []Warning
	Tables   []TableInfo
	Stats    Stats
}

// Reader reads one OP2 stream, once.
type Reader struct {
	c      *fortran.Cursor
	opts   Options
	closer io.Closer
	done   bool
}

var ErrAlreadyRead = errors.New("op2: reader already used")

func NewReader(rs io.ReadSeeker, opts Options) (r *Reader, err error) {
	var c *fortran.Cursor
	if c, err = fortran.NewCursor(rs); err != nil {
		return nil, &ReadError{Err: err}
	}
	r = &Reader{c: c, opts: opts}
	return
}

// Open reads path through a buffered file source. The Reader must be closed.
func Open(path string, opts Options) (r *Reader, err error) {
	var (
		f   *os.File
		src *fortran.FileSource
	)
	if f, err = os.Open(path); err != nil {
		return
	}
	if src, err = fortran.NewFileSource(f); err != nil {
		f.Close()
		return
	}
	if r, err = NewReader(src, opts); err != nil {
		src.Close()
		return
	}
	r.closer = src
	return
}

func (r *Reader) Close() (err error) {
	if r.closer != nil {
		err = r.closer.Close()
		r.closer = nil
	}
	return
}

// Read walks the whole stream. On a fatal error the result still holds
// everything decoded before it, and the error is a *ReadError.
func (r *Reader) Read() (res *Result, err error) {
	if r.done {
		return nil, ErrAlreadyRead
	}
	r.done = true
	res = &Result{
		ID:      uuid.NewString(),
		Order:   r.c.Order(),
		Results: results.NewAccumulator(r.opts.Duplicates),
	}
	res.Stats.Bytes = r.c.Size()
	w := &walker{
		c:    r.c,
		opts: r.opts,
		acc:  res.Results,
		res:  res,
	}
	err = w.run()
	res.Results.Finalize()
	return
}

func ReadFile(path string, opts Options) (res *Result, err error) {
	var r *Reader
	if r, err = Open(path, opts); err != nil {
		return
	}
	defer r.Close()
	return r.Read()
}

func ReadBytes(b []byte, opts Options) (res *Result, err error) {
	var r *Reader
	if r, err = NewReader(bytes.NewReader(b), opts); err != nil {
		return
	}
	return r.Read()
}
