package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// CheckDim returns ErrDimensionMismatch when x does not fit sys.
func CheckDim(sys System, x State) error {
	if len(x) != sys.StateDim() {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x), sys.StateDim())
	}
	return nil
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}
