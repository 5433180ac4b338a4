package types

import (
	"fmt"
	"strconv"
)

/*
FactorKind names the physical quantity that indexes the transient, modal or
load-step dimension of a result table. It is chosen from the analysis code of
the table header.
*/
type FactorKind uint8

const (
	FactorNone FactorKind = iota
	FactorModeEigenvalue
	FactorFrequency
	FactorTime
	FactorLoadID
	FactorLoadIDEigenvalue
	FactorModeEigenvaluePair
	FactorLoadStep
)

var factorKindNames = [...]string{
	"none",
	"mode+eigenvalue",
	"frequency",
	"time",
	"load_id",
	"load_id+eigenvalue",
	"mode+eigenvalue_real+eigenvalue_imag",
	"load_step",
}

func (fk FactorKind) String() string {
	if int(fk) < len(factorKindNames) {
		return factorKindNames[fk]
	}
	return "FactorKind(" + strconv.Itoa(int(fk)) + ")"
}

// IsInteger is true for factors that count something (modes, load ids).
func (fk FactorKind) IsInteger() bool {
	switch fk {
	case FactorModeEigenvalue, FactorModeEigenvaluePair, FactorLoadID, FactorLoadIDEigenvalue:
		return true
	}
	return false
}

// Eigenvalues is the number of eigenvalue words that travel with the factor.
func (fk FactorKind) Eigenvalues() int {
	switch fk {
	case FactorModeEigenvalue, FactorLoadIDEigenvalue:
		return 1
	case FactorModeEigenvaluePair:
		return 2
	}
	return 0
}

// Factor is the value of the nonlinear factor for one slice of results.
// The zero Factor is the static (unset) factor.
type Factor struct {
	Kind  FactorKind
	Value float64
}

var NoFactor = Factor{}

func IntFactor(kind FactorKind, v int) Factor { return Factor{Kind: kind, Value: float64(v)} }

func FloatFactor(kind FactorKind, v float64) Factor { return Factor{Kind: kind, Value: v} }

func (f Factor) IsSet() bool { return f.Kind != FactorNone }

func (f Factor) Int() int { return int(f.Value) }

func (f Factor) String() string {
	switch {
	case !f.IsSet():
		return "none"
	case f.Kind.IsInteger():
		return fmt.Sprintf("%s=%d", f.Kind, f.Int())
	default:
		return fmt.Sprintf("%s=%g", f.Kind, f.Value)
	}
}

// ResultKey addresses one slice of a result table.
type ResultKey struct {
	Subcase int
	Factor  Factor
}

func NewResultKey(subcase int, factor Factor) ResultKey {
	return ResultKey{Subcase: subcase, Factor: factor}
}

// Less orders keys by subcase, then by factor value.
func (rk ResultKey) Less(other ResultKey) bool {
	if rk.Subcase != other.Subcase {
		return rk.Subcase < other.Subcase
	}
	if rk.Factor.Kind != other.Factor.Kind {
		return rk.Factor.Kind < other.Factor.Kind
	}
	return rk.Factor.Value < other.Factor.Value
}

func (rk ResultKey) String() string {
	return fmt.Sprintf("(subcase=%d, %s)", rk.Subcase, rk.Factor)
}
