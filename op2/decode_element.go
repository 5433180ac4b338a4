package op2

import (
	"github.com/umvarma/gonastran/results"
)

// elementDecoder builds the routine for one entry layout. A multi-node entry
// is the center words then exactly el.Nodes node groups, so the next element
// starts right after the last node group whatever the record length.
func elementDecoder(el *EntryLayout) decodeFunc {
	width := el.Words()
	return func(ctx *recordContext, data []byte) (err error) {
		var n int
		if n, err = entries(data, width); err != nil {
			return
		}
		for i := 0; i < n; i++ {
			var (
				start = 4 * width * i
				row   results.Row
			)
			pos := ctx.fields(el.Center[1:], data, start+4, &row.Values, &row.Complex, nil)
			if el.Nodes > 0 {
				row.Nodes = make([]results.NodeRow, el.Nodes)
				for k := range row.Nodes {
					nr := &row.Nodes[k]
					pos = ctx.fields(el.Node, data, pos, &nr.Values, &nr.Complex, &nr.Grid)
				}
			}
			if err = ctx.insert(ctx.word(data, start), row); err != nil {
				return
			}
		}
		return
	}
}

// fields decodes the words of one format string starting at pos and returns
// the position after them. Grid ids go to grid when it is not nil.
func (ctx *recordContext) fields(format string, data []byte, pos int,
	values *[]float64, cvalues *[]complex128, grid *int) int {
	for _, r := range format {
		switch r {
		case 'g':
			if grid != nil {
				*grid = int(int32(ctx.word(data, pos)))
			}
		case 'e', 'i':
			*values = append(*values, float64(int32(ctx.word(data, pos))))
		case 'f':
			*values = append(*values, ctx.float(data, pos))
		case 's':
		case 'c':
			*cvalues = append(*cvalues, ctx.pair(ctx.float(data, pos), ctx.float(data, pos+4)))
			pos += 4
		}
		pos += 4
	}
	return pos
}
