package pendulum

import "github.com/san-kum/pendulab/internal/dynamo"

// System adapts the model to dynamo.System over the vector [θ1, θ2, p1, p2].
type System struct {
	params Params
}

func NewSystem(p Params) *System {
	return &System{params: p}
}

func (s *System) Params() Params { return s.params }

func (s *System) StateDim() int { return 4 }

func (s *System) Derive(x dynamo.State, t float64) dynamo.State {
	return Derivs(s.params, FromVector(x)).Vector()
}

func (s *System) Energy(x dynamo.State) float64 {
	return Energy(s.params, FromVector(x))
}
