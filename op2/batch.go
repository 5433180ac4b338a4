package op2

import (
	"github.com/umvarma/gonastran/utils"
)

// FileResult is the outcome of reading one file of a batch.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// ReadFiles reads every path with its own Reader, spreading the files over at
// most parallel goroutines (one per CPU when parallel < 1). Outcomes keep the
// order of paths.
func ReadFiles(paths []string, opts Options, parallel int) (out []FileResult) {
	out = make([]FileResult, len(paths))
	utils.ParallelFor(parallel, len(paths), func(i int) {
		res, err := ReadFile(paths[i], opts)
		out[i] = FileResult{Path: paths[i], Result: res, Err: err}
	})
	return
}
