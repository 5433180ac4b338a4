package op2

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedElementType = errors.New("unsupported element type")
	ErrUnsupportedNumWide     = errors.New("unsupported num_wide")
	ErrUnsupportedTableCode   = errors.New("unsupported table code")
	ErrUnsupportedTable       = errors.New("unsupported table")
	ErrCounterSequence        = errors.New("sub-table counter out of sequence")
	ErrPartialEntry           = errors.New("record length is not a whole number of entries")
	ErrShortHeader            = errors.New("table header is too short")
)

// IsUnsupported reports whether err is one of the recoverable "no layout for
// this record" errors.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedElementType) ||
		errors.Is(err, ErrUnsupportedNumWide) ||
		errors.Is(err, ErrUnsupportedTableCode) ||
		errors.Is(err, ErrUnsupportedTable)
}

// UnsupportedAnalysisCodeError is fatal: without a known analysis code the
// nonlinear factor of the table cannot be interpreted.
type UnsupportedAnalysisCodeError struct {
	Table        string
	AnalysisCode int
}

func (e *UnsupportedAnalysisCodeError) Error() string {
	return fmt.Sprintf("table %s: unsupported analysis code %d", e.Table, e.AnalysisCode)
}

// ReadError is the fatal error of a read: what failed, in which table and at
// which byte.
type ReadError struct {
	Table  string
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("op2: at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("op2: table %s at byte %d: %v", e.Table, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Warning records a sub-record or table that was skipped without decoding.
type Warning struct {
	Table     string
	SubRecord int32
	Offset    int64
	Err       error
}

func (w Warning) String() string {
	return fmt.Sprintf("table %s sub-record %d at byte %d skipped: %v", w.Table, w.SubRecord, w.Offset, w.Err)
}
