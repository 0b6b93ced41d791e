package analysis

import (
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two trajectories perturbed along the first coordinate
// 2. After every step add ln(|δx|/δ0) and rescale the separation back to δ0
// 3. λ ≈ Σ ln(|δx|/δ0) / t
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 {
		return 0
	}

	x0p := x0.Clone()
	x0p[0] += perturbation
	return separationRate(sys, integ, x0, x0p, dt, duration, perturbation)
}

// LyapunovSpectrum runs the separation estimate once per state coordinate,
// perturbing that coordinate alone. It is not an orthonormalised spectrum;
// every entry converges towards the largest exponent for long durations.
func LyapunovSpectrum(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) []float64 {
	n := len(x0)
	spectrum := make([]float64, n)

	for i := 0; i < n; i++ {
		xp := x0.Clone()
		xp[i] += perturbation
		spectrum[i] = separationRate(sys, integ, x0, xp, dt, duration, perturbation)
	}

	return spectrum
}

func separationRate(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0, x0p dynamo.State,
	dt, duration, d0 float64,
) float64 {
	if d0 <= 0 || dt <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0p.Clone()
	t := 0.0
	sumLog := 0.0
	steps := 0

	for t < duration {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt
		steps++

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if steps == 0 {
		return 0
	}
	return sumLog / (float64(steps) * dt)
}
