// Package dynamo provides the generic simulation primitives shared by the
// pendulum model, the integrators and the analysis tools.
//
//   - [State]: vector representing a system state
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Hamiltonian]: systems that can report their total energy
//
// # Example
//
//	sys := pendulum.NewSystem(pendulum.DefaultParams())
//	integ := integrators.NewRK4()
//	x := pendulum.New().Vector()
//	x = integ.Step(sys, x, 0, 0.01)
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
package dynamo
