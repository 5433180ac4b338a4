package op2

import (
	"github.com/umvarma/gonastran/results"
)

// id, grid type, 6 values
func decodeNodalReal(ctx *recordContext, data []byte) (err error) {
	var n int
	if n, err = entries(data, 8); err != nil {
		return
	}
	for i := 0; i < n; i++ {
		pos := 32 * i
		row := results.Row{
			GridType: int(int32(ctx.word(data, pos+4))),
			Values:   make([]float64, 6),
		}
		for j := range row.Values {
			row.Values[j] = ctx.float(data, pos+8+4*j)
		}
		if err = ctx.insert(ctx.word(data, pos), row); err != nil {
			return
		}
	}
	return
}

// id, grid type, 6 real (or magnitude) words, 6 imaginary (or phase) words
func decodeNodalComplex(ctx *recordContext, data []byte) (err error) {
	var n int
	if n, err = entries(data, 14); err != nil {
		return
	}
	for i := 0; i < n; i++ {
		pos := 56 * i
		row := results.Row{
			GridType: int(int32(ctx.word(data, pos+4))),
			Complex:  make([]complex128, 6),
		}
		for j := range row.Complex {
			row.Complex[j] = ctx.pair(ctx.float(data, pos+8+4*j), ctx.float(data, pos+32+4*j))
		}
		if err = ctx.insert(ctx.word(data, pos), row); err != nil {
			return
		}
	}
	return
}
