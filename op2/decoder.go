package op2

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/umvarma/gonastran/results"
	"github.com/umvarma/gonastran/types"
	"github.com/umvarma/gonastran/utils"
)

// decodeKey selects one decode routine.
type decodeKey struct {
	Family      Family
	ElementType int
	NumWide     int
	Thermal     int
	Sort1       bool
	Complex     bool
	MagPhase    bool
}

func keyOf(dc *DataCode) decodeKey {
	etype := dc.ElementType
	if !dc.Family.IsElement() {
		etype = 0
	}
	return decodeKey{
		Family:      dc.Family,
		ElementType: etype,
		NumWide:     dc.NumWide,
		Thermal:     dc.Thermal,
		Sort1:       dc.IsSort1(),
		Complex:     dc.IsComplex(),
		MagPhase:    dc.IsMagnitudePhase(),
	}
}

// recordContext carries what a decode routine needs for one table.
type recordContext struct {
	dc    *DataCode
	order binary.ByteOrder
	keys  keyStrategy
	kind  string
	acc   *results.Accumulator
	rows  int
}

func (ctx *recordContext) word(data []byte, pos int) uint32 {
	return ctx.order.Uint32(data[pos:])
}

func (ctx *recordContext) float(data []byte, pos int) float64 {
	return float64(math.Float32frombits(ctx.order.Uint32(data[pos:])))
}

// pair is one complex value from two words, converted from magnitude and
// phase when the table is written that way.
func (ctx *recordContext) pair(a, b float64) complex128 {
	if ctx.dc.IsMagnitudePhase() {
		return utils.PolarToRect(a, b)
	}
	return complex(a, b)
}

func (ctx *recordContext) insert(first uint32, row results.Row) (err error) {
	id, key := ctx.keys.entry(first)
	if err = ctx.acc.Insert(ctx.kind, key, id, row); err != nil {
		return
	}
	ctx.acc.SetHeader(ctx.kind, key, ctx.dc.Header())
	ctx.rows++
	return
}

// entries checks that data is whole entries of width words and returns
// their count.
func entries(data []byte, width int) (n int, err error) {
	if len(data)%(4*width) != 0 {
		return 0, fmt.Errorf("%w: %d bytes, entry is %d words", ErrPartialEntry, len(data), width)
	}
	return len(data) / (4 * width), nil
}

type decodeFunc func(ctx *recordContext, data []byte) error

// keyStrategy turns the first word of an entry into the entity id and key it
// belongs to. The strategy is picked once per table from the sort code.
type keyStrategy interface {
	entry(first uint32) (id int, key types.ResultKey)
}

// sort1Keys: the first word is the device coded id, the key comes from the
// header.
type sort1Keys struct {
	device int
	key    types.ResultKey
}

func (s sort1Keys) entry(first uint32) (int, types.ResultKey) {
	return types.Resolve(types.RawRef(int32(first)), s.device).ID, s.key
}

// sort2Keys: the id comes from the header, the first word is the factor.
type sort2Keys struct {
	id      int
	subcase int
	kind    types.FactorKind
}

func (s sort2Keys) entry(first uint32) (int, types.ResultKey) {
	var f types.Factor
	switch {
	case s.kind == types.FactorNone:
	case s.kind.IsInteger():
		f = types.IntFactor(s.kind, int(int32(first)))
	default:
		f = types.FloatFactor(s.kind, float64(math.Float32frombits(first)))
	}
	return s.id, types.NewResultKey(s.subcase, f)
}

func newKeyStrategy(dc *DataCode) keyStrategy {
	if dc.IsSort1() {
		return sort1Keys{device: dc.DeviceCode, key: dc.Key()}
	}
	return sort2Keys{id: dc.Sort2ID(), subcase: dc.Subcase, kind: dc.FactorKind}
}

var registry = make(map[decodeKey]decodeFunc)

// register adds fn under both sort codes; complex routines also serve
// magnitude/phase tables.
func register(fam Family, etype, numWide, thermal int, isComplex bool, fn decodeFunc) {
	for _, sort1 := range []bool{true, false} {
		key := decodeKey{Family: fam, ElementType: etype, NumWide: numWide, Thermal: thermal, Sort1: sort1, Complex: isComplex}
		registry[key] = fn
		if isComplex {
			key.MagPhase = true
			registry[key] = fn
		}
	}
}

func init() {
	for _, thermal := range []int{0, 1} {
		register(FamilyNodal, 0, 8, thermal, false, decodeNodalReal)
	}
	register(FamilyNodal, 0, 14, 0, true, decodeNodalComplex)
	register(FamilyStrainEnergy, 0, 4, 0, false, decodeStrainEnergy)
	registry[decodeKey{Family: FamilyGridPointWeight, NumWide: gpwgWords, Sort1: true}] = decodeGridPointWeight

	for fam, byType := range layouts {
		for etype, el := range byType {
			if el.Real != nil {
				register(fam, etype, el.Real.Words(), 0, false, elementDecoder(el.Real))
			}
			if el.Complex != nil {
				register(fam, etype, el.Complex.Words(), 0, true, elementDecoder(el.Complex))
			}
		}
	}
}

// lookupDecoder finds the routine for a header, or explains why there is none.
func lookupDecoder(dc *DataCode) (fn decodeFunc, err error) {
	if fn, ok := registry[keyOf(dc)]; ok {
		return fn, nil
	}
	if dc.Family.IsElement() {
		if _, ok := LookupLayout(dc.Family, dc.ElementType); !ok {
			return nil, fmt.Errorf("%w: %d in %s", ErrUnsupportedElementType, dc.ElementType, dc.TableName)
		}
	}
	return nil, fmt.Errorf("%w: %d for %s element type %d format %d thermal %d in %s",
		ErrUnsupportedNumWide, dc.NumWide, dc.Family, dc.ElementType, dc.FormatCode, dc.Thermal, dc.TableName)
}
