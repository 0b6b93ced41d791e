package pendulum

import "math"

// Energy returns T + V, with the kinetic term T = ½(p1·θ̇1 + p2·θ̇2) and the
// potential measured from the pivot (y axis pointing down).
func Energy(p Params, s State) float64 {
	w1 := DTheta1(p, s.P1, s.P2, s.Theta1, s.Theta2)
	w2 := DTheta2(p, s.P1, s.P2, s.Theta1, s.Theta2)
	ke := 0.5 * (s.P1*w1 + s.P2*w2)
	pe := -(p.M1+p.M2)*p.G*p.L1*math.Cos(s.Theta1) - p.M2*p.G*p.L2*math.Cos(s.Theta2)
	return ke + pe
}

// EnergyScale is the characteristic energy used to normalise drift:
// the potential difference between hanging and inverted for each mass.
func EnergyScale(p Params) float64 {
	return (p.M1+p.M2)*p.G*p.L1 + p.M2*p.G*p.L2
}

// JointPositions returns the Cartesian positions of both joints relative to
// the pivot, with y growing downward.
func JointPositions(p Params, s State) (x1, y1, x2, y2 float64) {
	x1 = p.L1 * math.Sin(s.Theta1)
	y1 = p.L1 * math.Cos(s.Theta1)
	x2 = x1 + p.L2*math.Sin(s.Theta2)
	y2 = y1 + p.L2*math.Cos(s.Theta2)
	return
}
