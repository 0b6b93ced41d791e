// Package ensemble owns a collection of independent double pendulums and
// drives them frame by frame.
//
// A [Collection] holds the pendulum records together with a layout table of
// per-pendulum drawing offsets. A [Driver] runs the frame loop: apply a
// pending resize, advance every pendulum once, hand each one to a
// [Renderer] and feed the frame counters. Resizes requested through
// [Driver.SetCount] take effect only between frames and always start from
// fresh pendulums.
package ensemble
