package op2

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/umvarma/gonastran/results"
	"github.com/umvarma/gonastran/types"
)

const (
	minHeaderWords   = 50
	titledHeaderWord = 146
	titleWords       = 32
)

/*
DataCode is the resolved code tuple of one table header. It is built once per
header and only read afterwards; decoders take a pointer to it but never
change it.
*/
type DataCode struct {
	TableName      string
	Family         Family
	ApproachCode   int
	AnalysisCode   int
	DeviceCode     int
	TableCode      int
	SortCode       int
	ElementType    int
	ReferencePoint int
	Subcase        int
	FormatCode     int
	NumWide        int
	Thermal        int
	// Word5 is header word 5 untouched: a factor in SORT1, a raw id in SORT2
	Word5       uint32
	FactorKind  types.FactorKind
	Factor      types.Factor
	Eigenvalues []float64
	Title       string
	Subtitle    string
	Label       string
}

func (dc *DataCode) IsSort1() bool { return dc.SortCode&1 == 0 }

func (dc *DataCode) IsComplex() bool { return dc.FormatCode == 2 || dc.FormatCode == 3 }

func (dc *DataCode) IsMagnitudePhase() bool { return dc.FormatCode == 3 }

func (dc *DataCode) IsThermal() bool { return dc.Thermal == 1 }

// Sort2ID is the entity a SORT2 table is about.
func (dc *DataCode) Sort2ID() int {
	return types.DeviceID(int32(dc.Word5), dc.DeviceCode)
}

// Key is the result key of SORT1 entries.
func (dc *DataCode) Key() types.ResultKey {
	return types.NewResultKey(dc.Subcase, dc.Factor)
}

// Header is the metadata attached to every key this table fills.
func (dc *DataCode) Header() results.Header {
	return results.Header{
		Table:        dc.TableName,
		AnalysisCode: dc.AnalysisCode,
		ElementType:  dc.ElementType,
		Title:        dc.Title,
		Subtitle:     dc.Subtitle,
		Label:        dc.Label,
		Eigenvalues:  append([]float64(nil), dc.Eigenvalues...),
	}
}

// ResultKind names the result collection this table fills.
func (dc *DataCode) ResultKind() (kind string, err error) {
	switch dc.Family {
	case FamilyNodal:
		return nodalKind(dc.TableCode, dc.Thermal)
	case FamilyStress, FamilyStrain, FamilyForce:
		name, ok := ElementName(dc.ElementType)
		if !ok {
			return "", fmt.Errorf("%w: %d", ErrUnsupportedElementType, dc.ElementType)
		}
		return name + "_" + dc.Family.String(), nil
	case FamilyStrainEnergy:
		return "strain_energy", nil
	case FamilyGridPointWeight:
		return "grid_point_weight", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedTable, dc.TableName)
}

func (dc *DataCode) String() string {
	return fmt.Sprintf("%s: approach=%d table=%d sort=%d etype=%d subcase=%d format=%d num_wide=%d thermal=%d factor=%s",
		dc.TableName, dc.ApproachCode, dc.TableCode, dc.SortCode, dc.ElementType, dc.Subcase,
		dc.FormatCode, dc.NumWide, dc.Thermal, dc.Factor)
}

// FactorKindOf maps an analysis code to the kind of its nonlinear factor.
func FactorKindOf(analysisCode int) (fk types.FactorKind, ok bool) {
	switch analysisCode {
	case 1:
		return types.FactorNone, true
	case 2:
		return types.FactorModeEigenvalue, true
	case 5:
		return types.FactorFrequency, true
	case 6:
		return types.FactorTime, true
	case 7, 11, 12:
		return types.FactorLoadID, true
	case 8:
		return types.FactorLoadIDEigenvalue, true
	case 9:
		return types.FactorModeEigenvaluePair, true
	case 10:
		return types.FactorLoadStep, true
	}
	return types.FactorNone, false
}

// ResolveDataCode decodes a table header block.
func ResolveDataCode(name string, fam Family, header []byte, order binary.ByteOrder) (dc *DataCode, err error) {
	if len(header) < 4*minHeaderWords {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(header))
	}
	word := func(i int) uint32 { return order.Uint32(header[4*(i-1):]) }
	iword := func(i int) int { return int(int32(word(i))) }
	fword := func(i int) float64 { return float64(math.Float32frombits(word(i))) }

	dc = &DataCode{
		TableName:    name,
		Family:       fam,
		ApproachCode: iword(1),
		Subcase:      iword(4),
		Word5:        word(5),
		FormatCode:   iword(9),
		NumWide:      iword(10),
		Thermal:      iword(23),
	}
	w2 := iword(2)
	dc.TableCode, dc.SortCode = w2%1000, w2/1000
	if fam == FamilyGridPointWeight {
		dc.ReferencePoint = iword(3)
	} else {
		dc.ElementType = iword(3)
	}
	switch fam.HeaderRule() {
	case Plain:
		dc.AnalysisCode = dc.ApproachCode
	default:
		dc.DeviceCode = dc.ApproachCode % 10
		dc.AnalysisCode = (dc.ApproachCode - dc.DeviceCode) / 10
	}

	var ok bool
	if dc.FactorKind, ok = FactorKindOf(dc.AnalysisCode); !ok {
		return nil, &UnsupportedAnalysisCodeError{Table: name, AnalysisCode: dc.AnalysisCode}
	}
	if dc.IsSort1() && dc.FactorKind != types.FactorNone {
		if dc.FactorKind.IsInteger() {
			dc.Factor = types.IntFactor(dc.FactorKind, iword(5))
		} else {
			dc.Factor = types.FloatFactor(dc.FactorKind, fword(5))
		}
	}
	for i := 0; i < dc.FactorKind.Eigenvalues(); i++ {
		dc.Eigenvalues = append(dc.Eigenvalues, fword(6+i))
	}

	if len(header) >= 4*titledHeaderWord {
		text := func(first int) string {
			b := header[4*(first-1) : 4*(first-1+titleWords)]
			return strings.TrimRight(string(b), " \x00")
		}
		dc.Title, dc.Subtitle, dc.Label = text(51), text(83), text(115)
	}
	return
}
