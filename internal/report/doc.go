// Package report renders human-readable views of a kinematic tree: the
// indented body hierarchy, the list of generalized velocity slots and the
// base-frame origins of named bodies.
//
// Virtual bodies, which the model inserts to split multi-DOF joints, are
// folded into the real body at the end of their chain. Their report name
// is resolved with [ResolveName].
package report
