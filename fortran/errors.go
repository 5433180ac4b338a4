package fortran

import (
	"errors"
	"fmt"
)

var (
	ErrMarkerMismatch   = errors.New("block length words differ")
	ErrUnexpectedMarker = errors.New("unexpected marker")
	ErrNotMarker        = errors.New("block is not a marker")
	ErrTruncated        = errors.New("premature end of data")
	ErrNegativeLength   = errors.New("negative block length")
	ErrMisaligned       = errors.New("block length is not a whole number of words")
	ErrUnknownEndian    = errors.New("unable to detect byte order from leading length word")
)

// FormatError is a fatal protocol violation found at byte Offset.
type FormatError struct {
	Offset int64
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at byte %d: %v", e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnexpectedMarkerError reports the expected marker run and the values read up
// to and including the first one that differed.
type UnexpectedMarkerError struct {
	Expected []int32
	Actual   []int32
}

func (e *UnexpectedMarkerError) Error() string {
	return fmt.Sprintf("%v: expected %v, got %v", ErrUnexpectedMarker, e.Expected, e.Actual)
}

func (e *UnexpectedMarkerError) Is(target error) bool { return target == ErrUnexpectedMarker }

func formatErr(offset int64, err error) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		return err
	}
	return &FormatError{Offset: offset, Err: err}
}
