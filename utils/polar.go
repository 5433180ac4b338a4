package utils

import (
	"math"
	"math/cmplx"
)

const (
	DegToRad = math.Pi / 180.
	RadToDeg = 180. / math.Pi
)

// PolarToRect converts a magnitude and a phase in degrees to a complex value.
func PolarToRect(mag, phaseDeg float64) complex128 {
	return cmplx.Rect(mag, phaseDeg*DegToRad)
}

// RectToPolar returns the magnitude and the phase in degrees, in [0, 360).
func RectToPolar(c complex128) (mag, phaseDeg float64) {
	mag = cmplx.Abs(c)
	phaseDeg = math.Mod(cmplx.Phase(c)*RadToDeg, 360.)
	if phaseDeg < 0 {
		phaseDeg += 360.
	}
	if phaseDeg >= 360. {
		phaseDeg -= 360.
	}
	return
}

// PhaseMod wraps an angle in degrees into [0, 360).
func PhaseMod(phaseDeg float64) (wrapped float64) {
	wrapped = math.Mod(phaseDeg, 360.)
	if wrapped < 0 {
		wrapped += 360.
	}
	return
}
