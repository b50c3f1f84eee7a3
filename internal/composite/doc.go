// Package composite aggregates mass properties over a kinematic tree with
// the composite-rigid-body pass.
//
// An [Accumulator] owns the per-body scratch state (composite inertia and
// composite momentum). Construct one per tree and per goroutine and reuse
// it across calls:
//
//	acc := composite.NewAccumulator(m)
//	res, err := acc.CenterOfMass(m, q, qdot, true)
//	ke, _ := acc.KineticEnergy(m, q, qdot, false)
//
// A tree without mass yields [ErrDegenerateMass] instead of a division by
// zero.
package composite
