package op2

import "strings"

/*
EntryLayout describes one element entry word by word:

	e  entity id (device coded), only as the first word of Center
	g  grid id
	i  integer
	f  float
	s  4 characters, skipped
	c  complex pair, two words

A multi-node element is one Center entry followed by Nodes entries of Node.
*/
type EntryLayout struct {
	Center string
	Node   string
	Nodes  int
}

// Words is the width of a whole element entry in 4 byte words.
func (el *EntryLayout) Words() int {
	return formatWords(el.Center) + el.Nodes*formatWords(el.Node)
}

func formatWords(format string) (n int) {
	for _, r := range format {
		if r == 'c' {
			n += 2
		} else {
			n++
		}
	}
	return
}

// ElementLayout holds the real and complex layouts of one element type in one
// result family. A nil layout is not supported yet.
type ElementLayout struct {
	Real    *EntryLayout
	Complex *EntryLayout
}

func single(format string) *EntryLayout { return &EntryLayout{Center: format} }

func multi(center, node string, nodes int) *EntryLayout {
	return &EntryLayout{Center: center, Node: node, Nodes: nodes}
}

var elementNames = map[int]string{
	1: "crod", 2: "cbeam", 3: "ctube", 4: "cshear", 10: "conrod",
	11: "celas1", 12: "celas2", 13: "celas3", 14: "celas4",
	20: "cdamp1", 21: "cdamp2", 22: "cdamp3", 23: "cdamp4", 24: "cvisc",
	33: "cquad4", 34: "cbar", 38: "cgap", 39: "ctetra",
	64: "cquad8", 67: "cpenta", 68: "chexa", 69: "cbend", 70: "ctriar",
	74: "ctria3", 75: "ctria6", 82: "cquadr", 86: "cgap", 102: "cbush",
	144: "cquad4_bilinear",
}

// ElementName is the lower case card name used in result kinds.
func ElementName(etype int) (name string, ok bool) {
	name, ok = elementNames[etype]
	return
}

var (
	f8  = strings.Repeat("f", 8)
	f16 = strings.Repeat("f", 16)
	f20 = strings.Repeat("f", 20)
	c8  = strings.Repeat("c", 8)
)

// Stress and strain records share word layouts.
func stressStrainLayouts() map[int]ElementLayout {
	var (
		rod   = ElementLayout{Real: single("effff"), Complex: single("ecc")}
		spr   = ElementLayout{Real: single("ef"), Complex: single("ec")}
		plate = ElementLayout{Real: single("e" + f16), Complex: single("efcccfccc")}
	)
	shell := func(nodes int) ElementLayout {
		return ElementLayout{
			Real:    multi("esg"+f16, "g"+f16, nodes),
			Complex: multi("esgfcccfccc", "gfcccfccc", nodes),
		}
	}
	solid := func(nodes int) ElementLayout {
		return ElementLayout{
			Real:    multi("eisig"+f20, "g"+f20, nodes),
			Complex: multi("eisigcccccc", "gcccccc", nodes),
		}
	}
	return map[int]ElementLayout{
		1:   rod,
		2:   {Real: multi("e", "gfffffffff", 11)},
		3:   rod,
		4:   {Real: single("efff"), Complex: single("ecc")},
		10:  rod,
		11:  spr,
		12:  spr,
		13:  spr,
		33:  plate,
		34:  {Real: single("e" + strings.Repeat("f", 15)), Complex: single("e" + strings.Repeat("c", 9))},
		39:  solid(4),
		64:  shell(4),
		67:  solid(6),
		68:  solid(8),
		69:  {Real: multi("e", "gfffffffff", 2), Complex: multi("e", "gfcccc", 2)},
		70:  shell(3),
		74:  plate,
		75:  shell(3),
		82:  shell(4),
		102: {Real: single("effffff"), Complex: single("ecccccc")},
		144: shell(4),
	}
}

func forceLayouts() map[int]ElementLayout {
	var (
		rod    = ElementLayout{Real: single("eff"), Complex: single("ecc")}
		scalar = ElementLayout{Real: single("ef"), Complex: single("ec")}
		plate  = ElementLayout{Real: single("e" + f8), Complex: single("e" + c8)}
	)
	shell := func(nodes int) ElementLayout {
		return ElementLayout{
			Real:    multi("esg"+f8, "g"+f8, nodes),
			Complex: multi("esg"+c8, "g"+c8, nodes),
		}
	}
	return map[int]ElementLayout{
		1:   rod,
		2:   {Real: multi("e", "gffffffff", 11)},
		3:   rod,
		4:   {Real: single("e" + f16), Complex: single("e" + strings.Repeat("c", 16))},
		10:  rod,
		11:  scalar,
		12:  scalar,
		13:  scalar,
		14:  scalar,
		20:  scalar,
		21:  scalar,
		22:  scalar,
		23:  scalar,
		24:  rod,
		33:  plate,
		34:  plate,
		38:  {Real: single("e" + f8)},
		64:  shell(4),
		69:  {Real: multi("e", "gffffff", 2), Complex: multi("e", "gcccccc", 2)},
		70:  shell(3),
		74:  plate,
		75:  shell(3),
		82:  shell(4),
		102: {Real: single("effffff"), Complex: single("ecccccc")},
		144: shell(4),
	}
}

var layouts = func() map[Family]map[int]ElementLayout {
	stress := stressStrainLayouts()
	stress[86] = ElementLayout{Real: single("effffffffss")}
	return map[Family]map[int]ElementLayout{
		FamilyStress: stress,
		FamilyStrain: stressStrainLayouts(),
		FamilyForce:  forceLayouts(),
	}
}()

// LookupLayout returns the layouts of an element type in an element family.
func LookupLayout(fam Family, etype int) (el ElementLayout, ok bool) {
	el, ok = layouts[fam][etype]
	return
}

// RealWords is the real entry width of an element type, in words.
func RealWords(fam Family, etype int) (n int, ok bool) {
	el, found := LookupLayout(fam, etype)
	if !found || el.Real == nil {
		return 0, false
	}
	return el.Real.Words(), true
}

// ComplexWords is the complex entry width of an element type, in words.
func ComplexWords(fam Family, etype int) (n int, ok bool) {
	el, found := LookupLayout(fam, etype)
	if !found || el.Complex == nil {
		return 0, false
	}
	return el.Complex.Words(), true
}
