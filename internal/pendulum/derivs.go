package pendulum

import "math"

// Denom is the shared denominator of the angular velocity equations. It lies
// in [7, 16] for every real pair of angles and is never clamped.
func Denom(theta1, theta2 float64) float64 {
	c := math.Cos(theta1 - theta2)
	return 16 - 9*c*c
}

// DTheta1 is dθ1/dt at the point (p1, p2, θ1, θ2).
func DTheta1(p Params, p1, p2, theta1, theta2 float64) float64 {
	c := math.Cos(theta1 - theta2)
	return (6 / (p.M1 * p.L1 * p.L1)) * (2*p1 - 3*c*p2) / (16 - 9*c*c)
}

// DTheta2 is dθ2/dt at the point (p1, p2, θ1, θ2).
func DTheta2(p Params, p1, p2, theta1, theta2 float64) float64 {
	c := math.Cos(theta1 - theta2)
	return (6 / (p.M2 * p.L2 * p.L2)) * (8*p2 - 3*c*p1) / (16 - 9*c*c)
}

// DP1 is dp1/dt. The angular velocities in the coupling term are evaluated
// at the same point as the momentum derivative itself.
func DP1(p Params, p1, p2, theta1, theta2 float64) float64 {
	w1 := DTheta1(p, p1, p2, theta1, theta2)
	w2 := DTheta2(p, p1, p2, theta1, theta2)
	return -(p.M1+p.M2)*p.G*p.L1*math.Sin(theta1) - p.coupling()*(w1*w2*math.Sin(theta1-theta2))
}

// DP2 is dp2/dt, see DP1.
func DP2(p Params, p1, p2, theta1, theta2 float64) float64 {
	w1 := DTheta1(p, p1, p2, theta1, theta2)
	w2 := DTheta2(p, p1, p2, theta1, theta2)
	return -p.M2*p.G*p.L2*math.Sin(theta2) + p.coupling()*(w1*w2*math.Sin(theta1-theta2))
}

// Derivs evaluates all four derivatives at s. The angular velocities are
// computed once and shared by the momentum equations; the result is
// identical to calling DTheta1, DTheta2, DP1 and DP2 separately.
func Derivs(p Params, s State) State {
	delta := s.Theta1 - s.Theta2
	c := math.Cos(delta)
	den := 16 - 9*c*c

	w1 := (6 / (p.M1 * p.L1 * p.L1)) * (2*s.P1 - 3*c*s.P2) / den
	w2 := (6 / (p.M2 * p.L2 * p.L2)) * (8*s.P2 - 3*c*s.P1) / den
	cross := p.coupling() * (w1 * w2 * math.Sin(delta))

	return State{
		Theta1: w1,
		Theta2: w2,
		P1:     -(p.M1+p.M2)*p.G*p.L1*math.Sin(s.Theta1) - cross,
		P2:     -p.M2*p.G*p.L2*math.Sin(s.Theta2) + cross,
	}
}
