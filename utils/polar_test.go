package utils

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPolarRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		mag := 0.01 + 1000.*rng.Float64()
		phase := 1440.*rng.Float64() - 720.
		c := PolarToRect(mag, phase)
		gotMag, gotPhase := RectToPolar(c)
		assert.InDelta(t, mag, gotMag, 1.e-9*mag)
		want := PhaseMod(phase)
		// 0 and 360 are the same angle
		diff := math.Abs(gotPhase - want)
		if diff > 180. {
			diff = 360. - diff
		}
		assert.True(t, scalar.EqualWithinAbs(diff, 0, 1.e-7), "phase %v -> %v, want %v", phase, gotPhase, want)
	}
	{ // Quadrant checks
		c := PolarToRect(2., 90.)
		assert.InDelta(t, 0., real(c), 1.e-12)
		assert.InDelta(t, 2., imag(c), 1.e-12)
		_, p := RectToPolar(complex(0, -1))
		assert.InDelta(t, 270., p, 1.e-12)
		assert.InDelta(t, 30., PhaseMod(-330.), 1.e-12)
	}
}
