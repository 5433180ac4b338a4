package fortran

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer emits Fortran unformatted records. The first error sticks and
// every later call becomes a no-op.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	n     int64
	err   error
}

func NewWriter(w io.Writer, order binary.ByteOrder) *Writer {
	return &Writer{w: w, order: order}
}

func (w *Writer) Err() error { return w.err }

// Len is the number of bytes written so far.
func (w *Writer) Len() int64 { return w.n }

// Raw writes bytes with no framing.
func (w *Writer) Raw(b []byte) {
	if w.err != nil {
		return
	}
	var n int
	n, w.err = w.w.Write(b)
	w.n += int64(n)
}

func (w *Writer) word(v int32) {
	var b [4]byte
	w.order.PutUint32(b[:], uint32(v))
	w.Raw(b[:])
}

// Block writes [len][payload][len].
func (w *Writer) Block(payload []byte) {
	w.word(int32(len(payload)))
	w.Raw(payload)
	w.word(int32(len(payload)))
}

// Markers writes one single-word block per value.
func (w *Writer) Markers(values ...int32) {
	for _, v := range values {
		w.word(4)
		w.word(v)
		w.word(4)
	}
}

// Ints writes one block holding all values.
func (w *Writer) Ints(values ...int32) {
	p := NewPayload(w.order)
	p.Int(values...)
	w.Block(p.Bytes())
}

// String writes a character block blank padded to width bytes.
func (w *Writer) String(s string, width int) {
	b := []byte(s)
	for len(b) < width {
		b = append(b, ' ')
	}
	w.Block(b)
}

// Payload assembles the words of a record.
type Payload struct {
	order binary.ByteOrder
	buf   []byte
}

func NewPayload(order binary.ByteOrder) *Payload {
	return &Payload{order: order}
}

func (p *Payload) put(u uint32) {
	var b [4]byte
	p.order.PutUint32(b[:], u)
	p.buf = append(p.buf, b[:]...)
}

func (p *Payload) Int(values ...int32) *Payload {
	for _, v := range values {
		p.put(uint32(v))
	}
	return p
}

func (p *Payload) Float(values ...float32) *Payload {
	for _, v := range values {
		p.put(math.Float32bits(v))
	}
	return p
}

// Chars appends s blank padded to a whole number of words.
func (p *Payload) Chars(s string) *Payload {
	b := []byte(s)
	for len(b)%4 != 0 || len(b) == 0 {
		b = append(b, ' ')
	}
	p.buf = append(p.buf, b...)
	return p
}

// Pad appends zero words until the payload is n words long.
func (p *Payload) Pad(n int) *Payload {
	for len(p.buf) < 4*n {
		p.buf = append(p.buf, 0, 0, 0, 0)
	}
	return p
}

func (p *Payload) Words() int { return len(p.buf) / 4 }

func (p *Payload) Bytes() []byte { return p.buf }
