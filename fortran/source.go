package fortran

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	minWindowSize = 1 << 20
)

// FileSource is a seekable reader over a file that serves reads from a
// read-ahead window, so the many short marker reads of an OP2 walk stay in
// memory.
type FileSource struct {
	file     *os.File
	size     int64
	pos      int64
	buf      []byte
	bufStart int64
	bufLen   int
}

func NewFileSource(f *os.File) (fs *FileSource, err error) {
	var (
		info os.FileInfo
	)
	if info, err = f.Stat(); err != nil {
		return
	}
	fs = &FileSource{
		file: f,
		size: info.Size(),
		buf:  make([]byte, minWindowSize),
	}
	return
}

func (fs *FileSource) Size() int64 { return fs.size }

func (fs *FileSource) Close() (err error) {
	if fs.file == nil {
		return nil
	}
	err = fs.file.Close()
	fs.file = nil
	fs.buf = nil
	fs.bufLen = 0
	return
}

func (fs *FileSource) fill(offset int64) (err error) {
	if fs.file == nil {
		return os.ErrClosed
	}
	toRead := int64(len(fs.buf))
	if remain := fs.size - offset; remain < toRead {
		toRead = remain
	}
	if toRead <= 0 {
		fs.bufLen = 0
		return io.EOF
	}
	n, err := fs.file.ReadAt(fs.buf[:toRead], offset)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == toRead) {
		fs.bufLen = 0
		return
	}
	fs.bufStart = offset
	fs.bufLen = n
	return nil
}

func (fs *FileSource) Read(p []byte) (n int, err error) {
	if fs.pos >= fs.size {
		return 0, io.EOF
	}
	for n < len(p) && fs.pos < fs.size {
		if fs.pos < fs.bufStart || fs.pos >= fs.bufStart+int64(fs.bufLen) {
			if err = fs.fill(fs.pos); err != nil {
				return
			}
		}
		off := int(fs.pos - fs.bufStart)
		k := copy(p[n:], fs.buf[off:fs.bufLen])
		n += k
		fs.pos += int64(k)
	}
	return
}

func (fs *FileSource) Seek(offset int64, whence int) (abs int64, err error) {
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = fs.pos + offset
	case io.SeekEnd:
		abs = fs.size + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative position %d", abs)
	}
	fs.pos = abs
	return
}
