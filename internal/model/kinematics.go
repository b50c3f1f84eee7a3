package model

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/spatial"
)

// UpdateKinematics recomputes the parent and base transforms of every body
// for configuration q, and the spatial velocities and accelerations when
// qdot and qddot are given. A nil qdot zeroes all velocities; a nil qddot
// leaves accelerations zero.
func (m *Model) UpdateKinematics(q, qdot, qddot []float64) error {
	if err := m.checkDims(q, qdot, qddot); err != nil {
		return err
	}

	for i := 1; i < len(m.bodies); i++ {
		joint := m.joints[i]
		parent := m.bodies[i].Parent

		xj, vj := joint.jcalc(q, qdot)
		m.xLambda[i] = xj.Mul(m.placement[i])

		if parent != 0 {
			m.xBase[i] = m.xLambda[i].Mul(m.xBase[parent])
			m.v[i] = m.xLambda[i].Apply(m.v[parent]).Add(vj)
		} else {
			m.xBase[i] = m.xLambda[i]
			m.v[i] = vj
		}

		if qddot == nil {
			m.a[i] = spatial.Vector{}
			continue
		}
		ai := joint.motion(qddot).Add(m.v[i].CrossMotion(vj))
		if parent != 0 {
			ai = ai.Add(m.xLambda[i].Apply(m.a[parent]))
		}
		m.a[i] = ai
	}
	return nil
}

func (m *Model) checkDims(q, qdot, qddot []float64) error {
	if len(q) != m.QSize() {
		return &DimensionError{Vector: "q", Want: m.QSize(), Got: len(q)}
	}
	if qdot != nil && len(qdot) != m.dofCount {
		return &DimensionError{Vector: "qdot", Want: m.dofCount, Got: len(qdot)}
	}
	if qddot != nil && len(qddot) != m.dofCount {
		return &DimensionError{Vector: "qddot", Want: m.dofCount, Got: len(qddot)}
	}
	return nil
}

// Velocity returns the spatial velocity of body i in body coordinates.
func (m *Model) Velocity(i int) spatial.Vector { return m.v[i] }

// Acceleration returns the spatial acceleration of body i in body coordinates.
func (m *Model) Acceleration(i int) spatial.Vector { return m.a[i] }

// LambdaTransform returns X_λ of movable body i, the transform from its
// parent frame into its own frame, as of the last kinematics update.
func (m *Model) LambdaTransform(i int) spatial.Transform { return m.xLambda[i] }

// Inertia returns the spatial inertia of body i, fixed children included.
func (m *Model) Inertia(i int) spatial.Inertia { return m.bodies[i].Inertia }

// BaseTransform returns the transform from base coordinates into the frame
// of id as of the last kinematics update.
func (m *Model) BaseTransform(id BodyID) (spatial.Transform, error) {
	if err := m.check(id); err != nil {
		return spatial.Transform{}, err
	}
	if id.IsFixed() {
		f := m.fixed[id.Index]
		return f.Transform.Mul(m.xBase[f.Parent]), nil
	}
	return m.xBase[id.Index], nil
}

// BodyToBase returns the base coordinates of a point given in the frame of
// id, using the transforms of the last kinematics update.
func (m *Model) BodyToBase(id BodyID, point mgl64.Vec3) (mgl64.Vec3, error) {
	x, err := m.BaseTransform(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return x.E.Transpose().Mul3x1(point).Add(x.R), nil
}

// BodyOrientation returns the rotation from base into body coordinates.
func (m *Model) BodyOrientation(id BodyID) (mgl64.Mat3, error) {
	x, err := m.BaseTransform(id)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	return x.E, nil
}
