// Package spatial provides the 6D spatial algebra used by the kinematic tree
// and the composite-inertia code.
//
// The conventions follow Featherstone's notation:
//
//   - [Vector]: motion or force vector, angular part first, linear part last
//   - [Transform]: Plücker coordinate transform X = [E 0; -E r× E]
//   - [Inertia]: rigid-body spatial inertia stored as mass, first moment of
//     mass h = m·c and the rotational inertia about the frame origin
//
// Transforms map coordinates from a parent frame into a child frame. Use
// [Transform.Apply] for motion vectors, [Transform.ApplyTranspose] to move
// force vectors (and inertias) back from the child into the parent, and
// [Transform.ApplyAdjoint] to move force vectors from parent to child.
package spatial
