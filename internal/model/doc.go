// Package model holds the kinematic tree consumed by the composite-inertia
// and report packages.
//
// A [Model] is an arena of bodies addressed by index. Body 0 is the root;
// every body added later gets the next index, so a parent index is always
// smaller than its children's. Bodies welded with [FixedJoint] live in a
// separate fixed-body table and are addressed with [Fixed] ids.
//
// # Example
//
//	m := model.New()
//	upper, _ := m.AddBody(model.Root, spatial.Identity(), model.RevoluteY(),
//	    spatial.PointMass(1, mgl64.Vec3{1, 0, 0}), "upper")
//	_, _ = m.AddBody(upper, spatial.Translation(mgl64.Vec3{1, 0, 0}), model.RevoluteY(),
//	    spatial.PointMass(1, mgl64.Vec3{1, 0, 0}), "lower")
//	_ = m.UpdateKinematics([]float64{0.3, -0.2}, nil, nil)
//
// # Thread Safety
//
// A Model carries the kinematic state of its last update and is NOT
// thread-safe. Give every goroutine its own [Model.Clone].
package model
