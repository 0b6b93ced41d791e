// Package pendulum integrates the Hamiltonian equations of motion of a
// double pendulum with a fixed-step classical Runge-Kutta scheme.
//
// The state is the record [State] holding the generalized coordinates
// (θ1, θ2) and their conjugate momenta (p1, p2). Physical constants live in
// an immutable [Params] value that is passed explicitly to every derivative
// function, so derivatives can be evaluated at perturbed stage points
// without touching the record being stepped.
//
//	p := pendulum.DefaultParams()
//	s := pendulum.New()
//	for i := 0; i < 100; i++ {
//	    s = pendulum.Step(p, s)
//	}
//	x1, y1, x2, y2 := pendulum.JointPositions(p, s)
package pendulum
