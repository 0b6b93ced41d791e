package pendulum

import (
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
)

// State is the phase-space point of one double pendulum. Angles are not
// wrapped; P1 and P2 are canonical momenta, not angular velocities.
type State struct {
	Theta1, Theta2 float64
	P1, P2         float64
}

// New returns the fixed initial condition: both links horizontal, at rest.
func New() State {
	return State{
		Theta1: math.Pi / 2,
		Theta2: math.Pi / 2,
	}
}

// Vector returns the state as [θ1, θ2, p1, p2].
func (s State) Vector() dynamo.State {
	return dynamo.State{s.Theta1, s.Theta2, s.P1, s.P2}
}

// FromVector is the inverse of Vector. x must have at least four entries.
func FromVector(x dynamo.State) State {
	return State{Theta1: x[0], Theta2: x[1], P1: x[2], P2: x[3]}
}

func (s State) add(k State, f float64) State {
	return State{
		Theta1: s.Theta1 + f*k.Theta1,
		Theta2: s.Theta2 + f*k.Theta2,
		P1:     s.P1 + f*k.P1,
		P2:     s.P2 + f*k.P2,
	}
}

func (s State) scale(f float64) State {
	return State{
		Theta1: f * s.Theta1,
		Theta2: f * s.Theta2,
		P1:     f * s.P1,
		P2:     f * s.P2,
	}
}
