package op2

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/umvarma/gonastran/fortran"
)

// HeaderSpec holds the words of a table header as they are written.
type HeaderSpec struct {
	ApproachCode int32
	TableCode    int32
	SortCode     int32
	ElementType  int32 // or reference point for grid point weight tables
	Subcase      int32
	Word5        uint32
	Eigenvalues  [2]float32
	FormatCode   int32
	NumWide      int32
	Thermal      int32
	Title        string
	Subtitle     string
	Label        string
}

// Approach is the device coded word 1 of a header.
func Approach(analysisCode, deviceCode int32) int32 { return analysisCode*10 + deviceCode }

func IntWord(v int32) uint32 { return uint32(v) }

func FloatWord(v float32) uint32 { return math.Float32bits(v) }

// Bytes lays the header out as a 146 word block.
func (h HeaderSpec) Bytes(order binary.ByteOrder) []byte {
	words := make([]int32, minHeaderWords)
	words[0] = h.ApproachCode
	words[1] = h.SortCode*1000 + h.TableCode
	words[2] = h.ElementType
	words[3] = h.Subcase
	words[4] = int32(h.Word5)
	words[5] = int32(math.Float32bits(h.Eigenvalues[0]))
	words[6] = int32(math.Float32bits(h.Eigenvalues[1]))
	words[8] = h.FormatCode
	words[9] = h.NumWide
	words[22] = h.Thermal
	p := fortran.NewPayload(order).Int(words...)
	for _, s := range []string{h.Title, h.Subtitle, h.Label} {
		p.Chars(fixedWidth(s, 4*titleWords))
	}
	return p.Bytes()
}

func fixedWidth(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s + string(bytes.Repeat([]byte{' '}, n-len(s)))
}

/*
Builder writes OP2 streams in memory. Calls chain; the first write error
sticks and is returned by Bytes.

	b := NewBuilder(binary.LittleEndian)
	b.Table("OUGV1").Header(h).Data(p).EndTable().EndFile()
*/
type Builder struct {
	buf     bytes.Buffer
	w       *fortran.Writer
	order   binary.ByteOrder
	counter int32
}

func NewBuilder(order binary.ByteOrder) *Builder {
	b := &Builder{order: order}
	b.w = fortran.NewWriter(&b.buf, order)
	return b
}

func (b *Builder) Order() binary.ByteOrder { return b.order }

// Payload starts a data record in the builder's byte order.
func (b *Builder) Payload() *fortran.Payload { return fortran.NewPayload(b.order) }

// TapeCode writes the MSC preamble.
func (b *Builder) TapeCode(date [3]int32, tapeID, label string) *Builder {
	b.w.Markers(3)
	b.w.Ints(date[:]...)
	b.w.Markers(7)
	b.w.String(tapeID, 8)
	b.w.Markers(2)
	b.w.String(label, 28)
	b.w.Markers(-1, 0)
	return b
}

// Label writes a 24 byte label record.
func (b *Builder) Label(label string) *Builder {
	b.w.String(fixedWidth(label, 24), 24)
	return b
}

// Table starts a table and resets the sub-table counter to -3.
func (b *Builder) Table(name string) *Builder {
	b.w.String(name, 8)
	b.w.Markers(-1, 7)
	b.w.Ints(101, 0, 0, 0, 0, 0, 0)
	b.w.Markers(-2, 1, 0)
	b.w.String(name, 8)
	b.counter = -3
	return b
}

// SubRecord writes [counter,1,0] and one block, then steps the counter.
func (b *Builder) SubRecord(payload []byte) *Builder {
	b.w.Markers(b.counter, 1, 0)
	b.w.Block(payload)
	b.counter--
	return b
}

func (b *Builder) Header(h HeaderSpec) *Builder { return b.SubRecord(h.Bytes(b.order)) }

func (b *Builder) Data(p *fortran.Payload) *Builder { return b.SubRecord(p.Bytes()) }

// SetCounter overrides the next sub-table counter.
func (b *Builder) SetCounter(c int32) *Builder {
	b.counter = c
	return b
}

// EndTable writes [counter,1,0] [0].
func (b *Builder) EndTable() *Builder {
	b.w.Markers(b.counter, 1, 0, 0)
	return b
}

// EndFile writes the lone [0] that ends the file.
func (b *Builder) EndFile() *Builder {
	b.w.Markers(0)
	return b
}

func (b *Builder) Bytes() ([]byte, error) {
	return b.buf.Bytes(), b.w.Err()
}
