package ensemble

import (
	"fmt"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/pendulum"
)

// minChunk is the smallest number of pendulums handed to one worker.
const minChunk = 64

// Collection is a set of pendulums sharing one Params value. It is owned by
// a single driver; Tick may fan out across workers but every pendulum is
// stepped by exactly one goroutine.
type Collection struct {
	params  pendulum.Params
	layout  Layout
	workers int

	states  []pendulum.State
	offsets []Vec2
	steps   int
}

func New(p pendulum.Params, layout Layout, workers int) *Collection {
	if workers < 1 {
		workers = 1
	}
	return &Collection{
		params:  p,
		layout:  layout,
		workers: workers,
	}
}

// Resize discards every pendulum and creates n fresh ones at the initial
// condition, rebuilding the layout table.
func (c *Collection) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("pendulum count must not be negative, got %d", n)
	}
	states := make([]pendulum.State, n)
	for i := range states {
		states[i] = pendulum.New()
	}
	c.states = states
	c.offsets = c.layout.Table(n)
	c.steps = 0
	return nil
}

func (c *Collection) Len() int { return len(c.states) }

func (c *Collection) Params() pendulum.Params { return c.params }

func (c *Collection) Layout() Layout { return c.layout }

func (c *Collection) State(i int) pendulum.State { return c.states[i] }

func (c *Collection) Offset(i int) Vec2 { return c.offsets[i] }

// Steps is the number of ticks since the last resize.
func (c *Collection) Steps() int { return c.steps }

// Time is the simulated time since the last resize.
func (c *Collection) Time() float64 { return float64(c.steps) * pendulum.DT }

// Tick advances every pendulum by one fixed step.
func (c *Collection) Tick() {
	p := c.params
	states := c.states
	dynamo.ParallelFor(len(states), c.workers, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			states[i] = pendulum.Step(p, states[i])
		}
	})
	c.steps++
}

// Each calls fn for every pendulum in index order.
func (c *Collection) Each(fn func(i int, s pendulum.State, off Vec2)) {
	for i, s := range c.states {
		fn(i, s, c.offsets[i])
	}
}
