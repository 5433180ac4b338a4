package op2

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/umvarma/gonastran/results"
)

// id, strain energy, percent of total, energy density
func decodeStrainEnergy(ctx *recordContext, data []byte) (err error) {
	var n int
	if n, err = entries(data, 4); err != nil {
		return
	}
	for i := 0; i < n; i++ {
		pos := 16 * i
		row := results.Row{Values: []float64{
			ctx.float(data, pos+4), ctx.float(data, pos+8), ctx.float(data, pos+12),
		}}
		if err = ctx.insert(ctx.word(data, pos), row); err != nil {
			return
		}
	}
	return
}

// Grid point weight record: MO(6x6) S(3x3) mass(3) cg(3x3) IS(3x3) IQ(3) Q(3x3)
const gpwgWords = 36 + 9 + 3 + 9 + 9 + 3 + 9

// The record has no id word; it belongs to the reference point of the header.
func decodeGridPointWeight(ctx *recordContext, data []byte) (err error) {
	var n int
	if n, err = entries(data, gpwgWords); err != nil {
		return
	}
	if n != 1 {
		return fmt.Errorf("%w: grid point weight record holds %d entries", ErrPartialEntry, n)
	}
	row := results.Row{Values: make([]float64, gpwgWords)}
	for i := range row.Values {
		row.Values[i] = ctx.float(data, 4*i)
	}
	key := ctx.dc.Key()
	if err = ctx.acc.Insert(ctx.kind, key, ctx.dc.ReferencePoint, row); err != nil {
		return
	}
	ctx.acc.SetHeader(ctx.kind, key, ctx.dc.Header())
	ctx.rows++
	return
}

// GridPointWeight is the unpacked output of the grid point weight generator.
type GridPointWeight struct {
	MO   *mat.Dense // rigid body mass matrix about the reference point
	S    *mat.Dense // principal mass axes direction cosines
	Mass [3]float64
	CG   *mat.Dense
	IS   *mat.Dense // inertia about the center of gravity
	IQ   [3]float64 // principal inertias
	Q    *mat.Dense
}

// UnpackGridPointWeight splits a grid_point_weight row into its matrices.
func UnpackGridPointWeight(row results.Row) (gpw GridPointWeight, err error) {
	if len(row.Values) != gpwgWords {
		err = fmt.Errorf("grid point weight row has %d values, expected %d", len(row.Values), gpwgWords)
		return
	}
	v := row.Values
	take := func(n int) (s []float64) {
		s = append([]float64(nil), v[:n]...)
		v = v[n:]
		return
	}
	gpw.MO = mat.NewDense(6, 6, take(36))
	gpw.S = mat.NewDense(3, 3, take(9))
	copy(gpw.Mass[:], take(3))
	gpw.CG = mat.NewDense(3, 3, take(9))
	gpw.IS = mat.NewDense(3, 3, take(9))
	copy(gpw.IQ[:], take(3))
	gpw.Q = mat.NewDense(3, 3, take(9))
	return
}

// TotalMass is the trace based mass of the rigid body matrix, the mean of
// the three translational diagonal terms.
func (gpw GridPointWeight) TotalMass() float64 {
	return (gpw.MO.At(0, 0) + gpw.MO.At(1, 1) + gpw.MO.At(2, 2)) / 3
}
