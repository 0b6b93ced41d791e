// Package analysis provides chaos diagnostics for the pendulum models.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [LyapunovSpectrum]: one separation estimate per perturbed coordinate
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a sampled series
//   - [PhasePortrait]: a trajectory projected onto two axes, angles wrapped
//   - [PoincareSection]: points where a coordinate crosses a level
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // trajectories diverge exponentially
//	}
package analysis
