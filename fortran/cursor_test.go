package fortran

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCursor(t *testing.T, build func(w *Writer)) *Cursor {
	var buf bytes.Buffer
	w := NewWriter(&buf, binary.LittleEndian)
	build(w)
	require.NoError(t, w.Err())
	c, err := NewCursorWithOrder(bytes.NewReader(buf.Bytes()), binary.LittleEndian)
	require.NoError(t, err)
	return c
}

func TestBlockRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	payloads := [][]byte{{}, {1}, []byte("OUGV1   "), make([]byte, 4096)}
	for i := 0; i < 50; i++ {
		p := make([]byte, rng.Intn(300))
		rng.Read(p)
		payloads = append(payloads, p)
	}
	c := newTestCursor(t, func(w *Writer) {
		for _, p := range payloads {
			w.Block(p)
		}
	})
	for _, p := range payloads {
		before := c.Tell()
		got, err := c.ReadBlock()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Equal(t, before+8+int64(len(p)), c.Tell())
	}
	assert.True(t, c.AtEOF())
}

func TestBlockLengthMismatch(t *testing.T) {
	c := newTestCursor(t, func(w *Writer) {
		w.word(8)
		w.Raw([]byte("OUGV1   "))
		w.word(9)
	})
	_, err := c.ReadBlock()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMarkerMismatch))
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, int64(0), fe.Offset)
	assert.Equal(t, int64(0), c.Tell())
}

func TestBlockTruncated(t *testing.T) {
	c := newTestCursor(t, func(w *Writer) {
		w.Markers(-1)
		w.word(100)
		w.Raw([]byte{1, 2, 3})
	})
	require.NoError(t, c.ReadMarkers(-1))
	_, err := c.ReadBlock()
	assert.True(t, errors.Is(err, ErrTruncated))
	assert.Equal(t, int64(12), c.Tell())
}

func TestSkipBlock(t *testing.T) {
	{ // Skip validates both length words
		c := newTestCursor(t, func(w *Writer) {
			w.Block(make([]byte, 40))
			w.Markers(7)
		})
		n, err := c.SkipBlock()
		require.NoError(t, err)
		assert.Equal(t, 40, n)
		assert.Equal(t, int64(48), c.Tell())
		require.NoError(t, c.ReadMarkers(7))
	}
	{ // A bad trailer is caught even though the payload is never read
		c := newTestCursor(t, func(w *Writer) {
			w.word(12)
			w.Raw(make([]byte, 12))
			w.word(16)
		})
		_, err := c.SkipBlock()
		assert.True(t, errors.Is(err, ErrMarkerMismatch))
		assert.Equal(t, int64(0), c.Tell())
	}
}

func TestMarkerStrictness(t *testing.T) {
	c := newTestCursor(t, func(w *Writer) {
		w.Markers(-3, 1, 0, -4, 2, 0)
	})
	require.NoError(t, c.ReadMarkers(-3, 1, 0))
	before := c.Tell()
	err := c.ReadMarkers(-4, 1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedMarker))
	var ume *UnexpectedMarkerError
	require.True(t, errors.As(err, &ume))
	assert.Equal(t, []int32{-4, 1, 0}, ume.Expected)
	assert.Equal(t, []int32{-4, 2}, ume.Actual)
	// The stream sits at the start of the failing marker, one marker in.
	assert.Equal(t, before+12, c.Tell())
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, before+12, fe.Offset)
}

func TestMarkerRejectsWideBlock(t *testing.T) {
	c := newTestCursor(t, func(w *Writer) {
		w.Ints(1, 2)
	})
	err := c.ReadMarkers(1)
	assert.True(t, errors.Is(err, ErrNotMarker))
	assert.Equal(t, int64(0), c.Tell())
}

func TestPeekIsSideEffectFree(t *testing.T) {
	values := []int32{-1, 7, -2, 1, 0, -3}
	build := func(w *Writer) { w.Markers(values...) }
	direct := newTestCursor(t, build)
	peeked := newTestCursor(t, build)
	for n := 1; n <= 3; n++ {
		vals, err := peeked.PeekMarkers(n)
		require.NoError(t, err)
		assert.Equal(t, values[:n], vals)
		assert.Equal(t, int64(0), peeked.Tell())
	}
	for i := 0; i < len(values); i += 2 {
		got, err := peeked.PeekMarkers(2)
		require.NoError(t, err)
		require.NoError(t, peeked.ReadMarkers(got...))
		require.NoError(t, direct.ReadMarkers(values[i:i+2]...))
		assert.Equal(t, direct.Tell(), peeked.Tell())
	}
	_, err := peeked.PeekMarkers(1)
	assert.True(t, errors.Is(err, ErrTruncated))
	assert.True(t, peeked.AtEOF())
}

func TestDetectOrder(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, lead := range KnownLeadingLengths {
			var buf bytes.Buffer
			w := NewWriter(&buf, order)
			w.Block(make([]byte, lead))
			c, err := NewCursor(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, order, c.Order())
			p, err := c.ReadBlock()
			require.NoError(t, err)
			assert.Len(t, p, int(lead))
		}
	}
	_, err := NewCursor(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0x7f}))
	assert.True(t, errors.Is(err, ErrUnknownEndian))
	_, err = NewCursor(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrUnknownEndian))
}

func TestTypedBlocks(t *testing.T) {
	c := newTestCursor(t, func(w *Writer) {
		w.Ints(3, 14, 15)
		w.String("OES1X1", 8)
		w.Block([]byte{1, 2, 3})
	})
	ints, err := c.ReadInts()
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 14, 15}, ints)
	name, err := c.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "OES1X1", name)
	before := c.Tell()
	_, err = c.ReadInts()
	assert.True(t, errors.Is(err, ErrMisaligned))
	assert.Equal(t, before, c.Tell())
}

func TestGotoAndPeekLength(t *testing.T) {
	c := newTestCursor(t, func(w *Writer) {
		w.String("OUGV1", 8)
		w.Markers(0)
	})
	n, err := c.PeekLength()
	require.NoError(t, err)
	assert.Equal(t, int32(8), n)
	require.NoError(t, c.Goto(16))
	n, err = c.PeekLength()
	require.NoError(t, err)
	assert.Equal(t, int32(4), n)
	require.NoError(t, c.ReadMarkers(0))
	assert.Error(t, c.Goto(c.Size()+1))
}

func TestFileSource(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, binary.BigEndian)
	w.Markers(3)
	big := make([]byte, 3*minWindowSize/2)
	for i := range big {
		big[i] = byte(i % 251)
	}
	w.Block(big)
	w.Markers(0)
	require.NoError(t, w.Err())

	path := filepath.Join(t.TempDir(), "source.op2")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	f, err := os.Open(path)
	require.NoError(t, err)
	src, err := NewFileSource(f)
	require.NoError(t, err)
	defer src.Close()

	c, err := NewCursor(src)
	require.NoError(t, err)
	assert.Equal(t, binary.ByteOrder(binary.BigEndian), c.Order())
	require.NoError(t, c.ReadMarkers(3))
	got, err := c.ReadBlock()
	require.NoError(t, err)
	assert.Equal(t, big, got)
	require.NoError(t, c.ReadMarkers(0))
	assert.True(t, c.AtEOF())

	require.NoError(t, c.Goto(12))
	n, err := c.SkipBlock()
	require.NoError(t, err)
	assert.Equal(t, len(big), n)
}
