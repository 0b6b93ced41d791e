package metrics

import (
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
)

// EnergyDrift tracks the largest deviation of a system's energy from its
// first observed value, normalised by a characteristic energy scale.
type EnergyDrift struct {
	name          string
	scale         float64
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	sys           dynamo.System
}

func NewEnergyDrift(sys dynamo.System, scale float64) *EnergyDrift {
	if scale == 0 {
		scale = 1
	}
	return &EnergyDrift{
		name:  "energy_drift",
		sys:   sys,
		scale: math.Abs(scale),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	h, ok := e.sys.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	drift := math.Abs(energy-e.initialEnergy) / e.scale
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Current returns the most recently observed energy.
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
