package pendulum

import (
	"fmt"
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// Variant selects the form of the momentum equations.
type Variant int

const (
	// Reference applies the full coupling term θ̇1·θ̇2·sin(θ1-θ2) to the
	// momentum derivatives.
	Reference Variant = iota
	// Hamiltonian halves the coupling term, which makes the equations
	// canonical for Energy so that energy is an invariant of motion.
	Hamiltonian
)

var variantNames = map[Variant]string{
	Reference:   "reference",
	Hamiltonian: "hamiltonian",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps a variant name to its value. The empty string selects
// Reference.
func ParseVariant(name string) (Variant, error) {
	if name == "" {
		return Reference, nil
	}
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return Reference, fmt.Errorf("unknown variant: %s (available: reference, hamiltonian)", name)
}

// Params holds the physical constants of one double pendulum. A Params
// value is never modified after construction.
type Params struct {
	M1, M2  float64
	L1, L2  float64
	G       float64
	Variant Variant
}

func DefaultParams() Params {
	return Params{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		G: DefaultGravity,
	}
}

// Validate reports masses or lengths that are not strictly positive and
// finite, and a non-finite gravity.
func (p Params) Validate() error {
	check := []struct {
		name string
		val  float64
	}{
		{"m1", p.M1}, {"m2", p.M2}, {"l1", p.L1}, {"l2", p.L2},
	}
	for _, c := range check {
		if !(c.val > 0) || math.IsInf(c.val, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", dynamo.ErrParameterBounds, c.name, c.val)
		}
	}
	if math.IsNaN(p.G) || math.IsInf(p.G, 0) {
		return fmt.Errorf("%w: g must be finite, got %v", dynamo.ErrParameterBounds, p.G)
	}
	if _, ok := variantNames[p.Variant]; !ok {
		return fmt.Errorf("%w: %s", dynamo.ErrParameterBounds, p.Variant)
	}
	return nil
}

// coupling is the factor applied to θ̇1·θ̇2·sin(θ1-θ2) in the momentum
// equations.
func (p Params) coupling() float64 {
	if p.Variant == Hamiltonian {
		return 0.5
	}
	return 1
}
