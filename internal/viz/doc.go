// Package viz draws pendulum ensembles in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas implementing the ensemble renderer
//   - [Live]: Bubble Tea view driving an ensemble frame by frame
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	+ / -  - One pendulum more or less
//	] / [  - Ten pendulums more or less
//	Space  - Pause/Resume
//	R      - Restart every pendulum
//	T      - Cycle color themes
//	Q      - Quit
package viz
