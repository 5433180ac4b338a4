//go:build !linux

package cmd

import "errors"

func countInstructions(fn func() error) (uint64, error) {
	return 0, errors.New("instruction counts need perf events, linux only")
}
