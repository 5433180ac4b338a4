package op2

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umvarma/gonastran/types"
)

func TestResolveDataCode(t *testing.T) {
	order := binary.LittleEndian
	{ // Device coded word 1, SORT1 time factor, titles
		h := HeaderSpec{
			ApproachCode: Approach(6, 1),
			TableCode:    1,
			Subcase:      3,
			Word5:        FloatWord(0.5),
			FormatCode:   1,
			NumWide:      8,
			Title:        "WING BOX",
			Subtitle:     "TRANSIENT",
			Label:        "GUST",
		}
		dc, err := ResolveDataCode("OUGV1", FamilyNodal, h.Bytes(order), order)
		require.NoError(t, err)
		assert.Equal(t, 61, dc.ApproachCode)
		assert.Equal(t, 6, dc.AnalysisCode)
		assert.Equal(t, 1, dc.DeviceCode)
		assert.Equal(t, 1, dc.TableCode)
		assert.Equal(t, 3, dc.Subcase)
		assert.True(t, dc.IsSort1())
		assert.False(t, dc.IsComplex())
		assert.Equal(t, types.FloatFactor(types.FactorTime, 0.5), dc.Factor)
		assert.Equal(t, "WING BOX", dc.Title)
		assert.Equal(t, "TRANSIENT", dc.Subtitle)
		assert.Equal(t, "GUST", dc.Label)
		kind, err := dc.ResultKind()
		require.NoError(t, err)
		assert.Equal(t, "displacements", kind)
	}
	{ // Modes carry an integer factor and an eigenvalue
		h := HeaderSpec{
			ApproachCode: Approach(2, 1),
			TableCode:    TableCodeEigenvector,
			Subcase:      1,
			Word5:        IntWord(4),
			Eigenvalues:  [2]float32{1250.5, 0},
			FormatCode:   1,
			NumWide:      8,
		}
		dc, err := ResolveDataCode("OUGV1", FamilyNodal, h.Bytes(order), order)
		require.NoError(t, err)
		assert.Equal(t, types.IntFactor(types.FactorModeEigenvalue, 4), dc.Factor)
		assert.Equal(t, []float64{1250.5}, dc.Eigenvalues)
		kind, _ := dc.ResultKind()
		assert.Equal(t, "eigenvectors", kind)
	}
	{ // SORT2: word 5 is the device coded id, complex magnitude/phase
		h := HeaderSpec{
			ApproachCode: Approach(5, 2),
			TableCode:    TableCodeVelocity,
			SortCode:     1,
			Word5:        IntWord(72),
			FormatCode:   3,
			NumWide:      14,
		}
		dc, err := ResolveDataCode("OUGV2", FamilyNodal, h.Bytes(order), order)
		require.NoError(t, err)
		assert.False(t, dc.IsSort1())
		assert.True(t, dc.IsComplex())
		assert.True(t, dc.IsMagnitudePhase())
		assert.Equal(t, 7, dc.Sort2ID())
		assert.False(t, dc.Factor.IsSet())
		assert.Equal(t, types.FactorFrequency, dc.FactorKind)
	}
	{ // Grid point weight headers are not device coded
		h := HeaderSpec{ApproachCode: 1, TableCode: 13, ElementType: 100, NumWide: gpwgWords}
		dc, err := ResolveDataCode("OGPWG", FamilyGridPointWeight, h.Bytes(order), order)
		require.NoError(t, err)
		assert.Equal(t, 1, dc.AnalysisCode)
		assert.Equal(t, 0, dc.DeviceCode)
		assert.Equal(t, 100, dc.ReferencePoint)
		assert.Equal(t, 0, dc.ElementType)
	}
	{ // Element result kinds
		h := HeaderSpec{ApproachCode: Approach(1, 1), TableCode: TableCodeStress, ElementType: 74, NumWide: 17}
		dc, err := ResolveDataCode("OES1X1", FamilyStress, h.Bytes(order), order)
		require.NoError(t, err)
		kind, err := dc.ResultKind()
		require.NoError(t, err)
		assert.Equal(t, "ctria3_stress", kind)
		h.ElementType = 999
		dc, err = ResolveDataCode("OES1X1", FamilyStress, h.Bytes(order), order)
		require.NoError(t, err)
		_, err = dc.ResultKind()
		assert.True(t, errors.Is(err, ErrUnsupportedElementType))
	}
}

func TestResolveDataCodeErrors(t *testing.T) {
	order := binary.BigEndian
	_, err := ResolveDataCode("OUGV1", FamilyNodal, make([]byte, 40), order)
	assert.True(t, errors.Is(err, ErrShortHeader))

	h := HeaderSpec{ApproachCode: Approach(4, 1), TableCode: 1, NumWide: 8}
	_, err = ResolveDataCode("OUGV1", FamilyNodal, h.Bytes(order), order)
	var uac *UnsupportedAnalysisCodeError
	require.True(t, errors.As(err, &uac))
	assert.Equal(t, 4, uac.AnalysisCode)
	assert.Equal(t, "OUGV1", uac.Table)
}

func TestFactorKindOf(t *testing.T) {
	want := map[int]types.FactorKind{
		1: types.FactorNone, 2: types.FactorModeEigenvalue, 5: types.FactorFrequency,
		6: types.FactorTime, 7: types.FactorLoadID, 8: types.FactorLoadIDEigenvalue,
		9: types.FactorModeEigenvaluePair, 10: types.FactorLoadStep,
		11: types.FactorLoadID, 12: types.FactorLoadID,
	}
	for code := -1; code <= 20; code++ {
		fk, ok := FactorKindOf(code)
		expected, known := want[code]
		assert.Equal(t, known, ok, "analysis code %d", code)
		if known {
			assert.Equal(t, expected, fk, "analysis code %d", code)
		}
	}
}

func TestFamilyOf(t *testing.T) {
	for name, fam := range map[string]Family{
		"OUGV1": FamilyNodal, "BOUGV1": FamilyNodal, "OUG1": FamilyNodal, "OQG1": FamilyNodal,
		"OQMG1": FamilyNodal, "OPG1": FamilyNodal, "OES1X1": FamilyStress, "OES1C": FamilyStress,
		"OSTR1X": FamilyStrain, "OEF1X": FamilyForce, "ONRGY1": FamilyStrainEnergy,
		"OGPWG": FamilyGridPointWeight, "GEOM1": FamilyUnknown, "OESNLXR": FamilyUnknown,
		" oes1x ": FamilyStress,
	} {
		assert.Equal(t, fam, FamilyOf(name), name)
	}
	assert.Equal(t, Plain, FamilyGridPointWeight.HeaderRule())
	assert.Equal(t, DeviceEncoded, FamilyStrainEnergy.HeaderRule())
}
