package op2

import (
	"fmt"
	"strings"
)

// Family groups the tables that share one header rule and one decode routine
// family.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyNodal
	FamilyStress
	FamilyStrain
	FamilyForce
	FamilyStrainEnergy
	FamilyGridPointWeight
)

var familyNames = [...]string{"unknown", "nodal", "stress", "strain", "force", "strain_energy", "grid_point_weight"}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// IsElement is true for the families keyed by element type.
func (f Family) IsElement() bool {
	return f == FamilyStress || f == FamilyStrain || f == FamilyForce
}

// HeaderRule tells how word 1 of a table header splits into analysis code
// and device code.
type HeaderRule uint8

const (
	// DeviceEncoded: word1 = analysis_code*10 + device_code
	DeviceEncoded HeaderRule = iota
	// Plain: word1 = analysis_code, no device code
	Plain
)

func (f Family) HeaderRule() HeaderRule {
	if f == FamilyGridPointWeight {
		return Plain
	}
	return DeviceEncoded
}

var tablePrefixes = []struct {
	prefix string
	family Family
}{
	{"OGPWG", FamilyGridPointWeight},
	{"ONRGY", FamilyStrainEnergy},
	{"BOUG", FamilyNodal},
	{"OUG", FamilyNodal},
	{"OUP", FamilyNodal},
	{"OQG", FamilyNodal},
	{"OQMG", FamilyNodal},
	{"OPG", FamilyNodal},
	{"OSTR", FamilyStrain},
	{"OES", FamilyStress},
	{"OEF", FamilyForce},
}

// FamilyOf classifies a table by name. Names not listed are FamilyUnknown and
// are walked without decoding.
func FamilyOf(name string) Family {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, tp := range tablePrefixes {
		if strings.HasPrefix(name, tp.prefix) {
			// nonlinear element output has its own layouts
			if tp.family == FamilyStress && strings.HasPrefix(name, "OESNL") {
				return FamilyUnknown
			}
			return tp.family
		}
	}
	return FamilyUnknown
}

// nodal table codes
const (
	TableCodeDisplacement = 1
	TableCodeLoadVector   = 2
	TableCodeSPCForce     = 3
	TableCodeForce        = 4
	TableCodeStress       = 5
	TableCodeEigenvector  = 7
	TableCodeVelocity     = 10
	TableCodeAcceleration = 11
	TableCodeStrainEnergy = 18
	TableCodeMPCForce     = 39
)

// nodalKind is the result kind of a nodal table.
func nodalKind(tableCode, thermal int) (kind string, err error) {
	switch tableCode {
	case TableCodeDisplacement:
		if thermal == 1 {
			return "temperatures", nil
		}
		return "displacements", nil
	case TableCodeLoadVector:
		return "load_vectors", nil
	case TableCodeSPCForce:
		return "spc_forces", nil
	case TableCodeEigenvector:
		return "eigenvectors", nil
	case TableCodeVelocity:
		return "velocities", nil
	case TableCodeAcceleration:
		return "accelerations", nil
	case TableCodeMPCForce:
		return "mpc_forces", nil
	}
	return "", fmt.Errorf("%w: %d (thermal %d)", ErrUnsupportedTableCode, tableCode, thermal)
}
