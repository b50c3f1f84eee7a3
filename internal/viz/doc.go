// Package viz renders kinematic trees in the terminal.
//
// [Styles] color the text reports for the CLI; [Inspector] is a Bubble Tea
// program that edits a configuration and redraws the tree on a braille
// [Canvas] together with its mass properties.
//
// # Key Bindings
//
//	j/k, ↑/↓  - Select a degree of freedom
//	h/l, ←/→  - Decrease/increase the selected coordinate
//	+/-       - Double/halve the step
//	p         - Cycle the projection plane
//	t         - Cycle color themes
//	r         - Reset to the initial configuration
//	q         - Quit
package viz
