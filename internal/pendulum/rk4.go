package pendulum

// DT is the fixed integration step used by Step.
const DT = 0.01

// Advance returns s moved forward by one classical fourth-order Runge-Kutta
// step of size dt. Every stage evaluates all four derivatives at one
// consistently perturbed point. s itself is not modified; callers replace
// their record with the result in a single assignment.
func Advance(p Params, s State, dt float64) State {
	k1 := Derivs(p, s).scale(dt)
	k2 := Derivs(p, s.add(k1, 0.5)).scale(dt)
	k3 := Derivs(p, s.add(k2, 0.5)).scale(dt)
	k4 := Derivs(p, s.add(k3, 1)).scale(dt)

	return State{
		Theta1: s.Theta1 + (k1.Theta1+2*k2.Theta1+2*k3.Theta1+k4.Theta1)/6,
		Theta2: s.Theta2 + (k1.Theta2+2*k2.Theta2+2*k3.Theta2+k4.Theta2)/6,
		P1:     s.P1 + (k1.P1+2*k2.P1+2*k3.P1+k4.P1)/6,
		P2:     s.P2 + (k1.P2+2*k2.P2+2*k3.P2+k4.P2)/6,
	}
}

// Step advances s by the fixed step DT.
func Step(p Params, s State) State {
	return Advance(p, s, DT)
}

// StepN applies Step n times.
func StepN(p Params, s State, n int) State {
	for i := 0; i < n; i++ {
		s = Advance(p, s, DT)
	}
	return s
}
