// Package sweep evaluates the mass properties and energies of a model while
// one generalized coordinate moves over a range.
//
// # Thread Safety
//
// Run splits the samples into contiguous chunks. Every worker goroutine
// owns a clone of the model and its own composite.Accumulator, so the
// caller's model is only read, never updated.
package sweep
