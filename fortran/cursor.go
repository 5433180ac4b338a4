package fortran

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// KnownLeadingLengths are the values the first length word of an OP2 stream
// may take: a 24 byte label record, a marker (tape code) or an 8 byte table
// name record.
var KnownLeadingLengths = []int32{24, 4, 8}

/*
Cursor reads Fortran unformatted sequential records: [n][payload][n].

The cursor owns its source exclusively. Its position is the only record of
where the stream is, and every call, including one that fails, leaves the
stream positioned at Tell().
*/
type Cursor struct {
	rs    io.ReadSeeker
	order binary.ByteOrder
	pos   int64
	size  int64
	word  [4]byte
}

// NewCursor detects the byte order from the first length word of rs.
func NewCursor(rs io.ReadSeeker) (c *Cursor, err error) {
	var (
		size int64
		lead [4]byte
	)
	if size, err = rs.Seek(0, io.SeekEnd); err != nil {
		return
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return
	}
	if size < 4 {
		err = &FormatError{Offset: 0, Err: fmt.Errorf("%w: stream is %d bytes", ErrUnknownEndian, size)}
		return
	}
	if _, err = io.ReadFull(rs, lead[:]); err != nil {
		return
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return
	}
	order, ok := DetectOrder(lead[:])
	if !ok {
		err = &FormatError{Offset: 0, Err: fmt.Errorf("%w: % x", ErrUnknownEndian, lead)}
		return
	}
	c = &Cursor{rs: rs, order: order, size: size}
	return
}

// NewCursorWithOrder skips byte order detection.
func NewCursorWithOrder(rs io.ReadSeeker, order binary.ByteOrder) (c *Cursor, err error) {
	var (
		size int64
	)
	if size, err = rs.Seek(0, io.SeekEnd); err != nil {
		return
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return
	}
	c = &Cursor{rs: rs, order: order, size: size}
	return
}

// DetectOrder returns the byte order under which lead decodes to one of
// KnownLeadingLengths, trying little endian first.
func DetectOrder(lead []byte) (order binary.ByteOrder, ok bool) {
	if len(lead) < 4 {
		return nil, false
	}
	for _, o := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		v := int32(o.Uint32(lead))
		for _, known := range KnownLeadingLengths {
			if v == known {
				return o, true
			}
		}
	}
	return nil, false
}

func (c *Cursor) Order() binary.ByteOrder { return c.order }

func (c *Cursor) Tell() int64 { return c.pos }

func (c *Cursor) Size() int64 { return c.size }

func (c *Cursor) AtEOF() bool { return c.pos >= c.size }

// Goto moves to an absolute byte offset.
func (c *Cursor) Goto(pos int64) (err error) {
	if pos < 0 || pos > c.size {
		return fmt.Errorf("goto %d outside stream of %d bytes", pos, c.size)
	}
	if _, err = c.rs.Seek(pos, io.SeekStart); err != nil {
		return
	}
	c.pos = pos
	return
}

// restore puts the stream back at pos after a failed or peeking read.
func (c *Cursor) restore(pos int64) {
	if _, err := c.rs.Seek(pos, io.SeekStart); err == nil {
		c.pos = pos
	}
}

func (c *Cursor) readFull(p []byte) (err error) {
	n, err := io.ReadFull(c.rs, p)
	c.pos += int64(n)
	if err != nil && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
		err = ErrTruncated
	}
	return
}

func (c *Cursor) readInt32() (v int32, err error) {
	if err = c.readFull(c.word[:]); err != nil {
		return
	}
	v = int32(c.order.Uint32(c.word[:]))
	return
}

// readLength reads and checks a leading length word.
func (c *Cursor) readLength() (n int32, err error) {
	start := c.pos
	if n, err = c.readInt32(); err != nil {
		return
	}
	if n < 0 {
		err = fmt.Errorf("%w: %d", ErrNegativeLength, n)
		return
	}
	if start+8+int64(n) > c.size {
		err = fmt.Errorf("%w: block of %d bytes at %d overruns stream of %d bytes",
			ErrTruncated, n, start, c.size)
	}
	return
}

func (c *Cursor) readTrailer(n int32) (err error) {
	var tail int32
	if tail, err = c.readInt32(); err != nil {
		return
	}
	if tail != n {
		err = fmt.Errorf("%w: leading %d, trailing %d", ErrMarkerMismatch, n, tail)
	}
	return
}

// ReadBlock reads one [n][payload][n] record and returns the payload.
func (c *Cursor) ReadBlock() (payload []byte, err error) {
	var (
		start = c.pos
		n     int32
	)
	defer func() {
		if err != nil {
			c.restore(start)
			payload = nil
			err = formatErr(start, err)
		}
	}()
	if n, err = c.readLength(); err != nil {
		return
	}
	payload = make([]byte, n)
	if err = c.readFull(payload); err != nil {
		return
	}
	err = c.readTrailer(n)
	return
}

// SkipBlock seeks over a record's payload. Both length words are still read
// and compared. It returns the payload length.
func (c *Cursor) SkipBlock() (n int, err error) {
	var (
		start = c.pos
		n32   int32
	)
	defer func() {
		if err != nil {
			c.restore(start)
			n = 0
			err = formatErr(start, err)
		}
	}()
	if n32, err = c.readLength(); err != nil {
		return
	}
	if _, err = c.rs.Seek(int64(n32), io.SeekCurrent); err != nil {
		return
	}
	c.pos += int64(n32)
	if err = c.readTrailer(n32); err != nil {
		return
	}
	n = int(n32)
	return
}

// ReadMarker reads a single marker, a block holding exactly one int32.
func (c *Cursor) ReadMarker() (v int32, err error) {
	var (
		start = c.pos
		n     int32
	)
	defer func() {
		if err != nil {
			c.restore(start)
			err = formatErr(start, err)
		}
	}()
	if n, err = c.readLength(); err != nil {
		return
	}
	if n != 4 {
		err = fmt.Errorf("%w: length %d", ErrNotMarker, n)
		return
	}
	if v, err = c.readInt32(); err != nil {
		return
	}
	err = c.readTrailer(n)
	return
}

// ReadMarkers consumes len(expected) markers. On the first value that differs
// the stream is left at the start of that marker.
func (c *Cursor) ReadMarkers(expected ...int32) (err error) {
	var (
		actual = make([]int32, 0, len(expected))
	)
	for _, want := range expected {
		start := c.pos
		var got int32
		if got, err = c.ReadMarker(); err != nil {
			return
		}
		actual = append(actual, got)
		if got != want {
			c.restore(start)
			return &FormatError{Offset: start, Err: &UnexpectedMarkerError{
				Expected: append([]int32(nil), expected...),
				Actual:   actual,
			}}
		}
	}
	return
}

// PeekMarkers reads n markers and puts the stream back where it was.
func (c *Cursor) PeekMarkers(n int) (values []int32, err error) {
	start := c.pos
	defer c.restore(start)
	values = make([]int32, n)
	for i := range values {
		if values[i], err = c.ReadMarker(); err != nil {
			values = nil
			return
		}
	}
	return
}

// PeekLength returns the next record's leading length word without consuming it.
func (c *Cursor) PeekLength() (n int32, err error) {
	start := c.pos
	defer c.restore(start)
	if n, err = c.readInt32(); err != nil {
		err = formatErr(start, err)
	}
	return
}

// ReadInts reads a block of int32 words.
func (c *Cursor) ReadInts() (ints []int32, err error) {
	var (
		start   = c.pos
		payload []byte
	)
	if payload, err = c.ReadBlock(); err != nil {
		return
	}
	if len(payload)%4 != 0 {
		c.restore(start)
		err = &FormatError{Offset: start, Err: fmt.Errorf("%w: %d bytes", ErrMisaligned, len(payload))}
		return
	}
	ints = make([]int32, len(payload)/4)
	for i := range ints {
		ints[i] = int32(c.order.Uint32(payload[4*i:]))
	}
	return
}

// ReadString reads a block of characters, trimming trailing blanks and NULs.
func (c *Cursor) ReadString() (s string, err error) {
	var (
		payload []byte
	)
	if payload, err = c.ReadBlock(); err != nil {
		return
	}
	s = strings.TrimRight(string(payload), " \x00")
	return
}
