package model

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/spatial"
)

type JointKind int

const (
	// JointHelical is a single-DOF joint about an arbitrary spatial axis.
	// Revolute and prismatic joints are the pure rotation and pure
	// translation cases.
	JointHelical JointKind = iota
	JointRevolute
	JointPrismatic
	// JointSpherical is a ball joint parameterized by a unit quaternion.
	JointSpherical
	// JointFixed welds a body rigidly to its parent.
	JointFixed
	// JointMultiAxis is a multi-DOF joint that AddBody decomposes into a
	// chain of single-DOF joints connected by virtual bodies.
	JointMultiAxis
	// JointFloatingBase is a 6-DOF joint (translation followed by a
	// spherical joint), decomposed like JointMultiAxis.
	JointFloatingBase
)

func (k JointKind) String() string {
	switch k {
	case JointHelical:
		return "helical"
	case JointRevolute:
		return "revolute"
	case JointPrismatic:
		return "prismatic"
	case JointSpherical:
		return "spherical"
	case JointFixed:
		return "fixed"
	case JointMultiAxis:
		return "multi_axis"
	case JointFloatingBase:
		return "floating_base"
	}
	return "unknown"
}

// Joint connects a body to its parent. Axes holds one unit motion axis per
// degree of freedom, expressed in the child frame.
type Joint struct {
	Kind JointKind
	Axes []spatial.Vector

	// QIndex is the first slot of the joint in q and qdot. For spherical
	// joints q[QIndex..QIndex+2] hold the quaternion vector part and
	// q[WIndex] its scalar part.
	QIndex int
	WIndex int
}

func (j Joint) DOF() int {
	if j.Kind == JointFixed {
		return 0
	}
	return len(j.Axes)
}

func axisJoint(kind JointKind, axis spatial.Vector) Joint {
	return Joint{Kind: kind, Axes: []spatial.Vector{axis}}
}

// Revolute returns a rotation joint about axis.
func Revolute(axis mgl64.Vec3) Joint {
	return axisJoint(JointRevolute, spatial.NewVector(axis.Normalize(), mgl64.Vec3{}))
}

// Prismatic returns a translation joint along axis.
func Prismatic(axis mgl64.Vec3) Joint {
	return axisJoint(JointPrismatic, spatial.NewVector(mgl64.Vec3{}, axis.Normalize()))
}

// Helical returns a single-DOF joint with an arbitrary spatial axis.
func Helical(axis spatial.Vector) Joint {
	return axisJoint(JointHelical, axis)
}

func RevoluteX() Joint  { return axisJoint(JointRevolute, spatial.AxisRX) }
func RevoluteY() Joint  { return axisJoint(JointRevolute, spatial.AxisRY) }
func RevoluteZ() Joint  { return axisJoint(JointRevolute, spatial.AxisRZ) }
func PrismaticX() Joint { return axisJoint(JointPrismatic, spatial.AxisTX) }
func PrismaticY() Joint { return axisJoint(JointPrismatic, spatial.AxisTY) }
func PrismaticZ() Joint { return axisJoint(JointPrismatic, spatial.AxisTZ) }

func Spherical() Joint {
	return Joint{
		Kind: JointSpherical,
		Axes: []spatial.Vector{spatial.AxisRX, spatial.AxisRY, spatial.AxisRZ},
	}
}

// FixedJoint welds the body to its parent. The body becomes an entry of the
// fixed-body table and its inertia is merged into the movable parent.
func FixedJoint() Joint {
	return Joint{Kind: JointFixed}
}

// MultiAxis returns a joint with one DOF per axis, in order.
func MultiAxis(axes ...spatial.Vector) Joint {
	return Joint{Kind: JointMultiAxis, Axes: append([]spatial.Vector(nil), axes...)}
}

// FloatingBase returns an unconstrained 6-DOF joint. Its q layout is
// translation(3), quaternion xyz(3) and quaternion w in the last q slot.
func FloatingBase() Joint {
	return Joint{
		Kind: JointFloatingBase,
		Axes: []spatial.Vector{
			spatial.AxisTX, spatial.AxisTY, spatial.AxisTZ,
			spatial.AxisRX, spatial.AxisRY, spatial.AxisRZ,
		},
	}
}

// jcalc returns the joint transform and the joint velocity for the current
// q and qdot. qdot may be nil.
func (j Joint) jcalc(q, qdot []float64) (spatial.Transform, spatial.Vector) {
	switch j.Kind {
	case JointSpherical:
		quat := mgl64.Quat{
			W: q[j.WIndex],
			V: mgl64.Vec3{q[j.QIndex], q[j.QIndex+1], q[j.QIndex+2]},
		}
		var vj spatial.Vector
		if qdot != nil {
			vj = j.motion(qdot)
		}
		return spatial.FromQuat(quat), vj

	default:
		axis := j.Axes[0]
		qi := q[j.QIndex]
		xj := spatial.Rotation(qi, axis.Angular())
		xj.R = axis.Linear().Mul(qi)

		var vj spatial.Vector
		if qdot != nil {
			vj = axis.Scale(qdot[j.QIndex])
		}
		return xj, vj
	}
}

// motion returns S·u for the joint rates u taken from the qdot-shaped vector.
func (j Joint) motion(u []float64) spatial.Vector {
	var out spatial.Vector
	for k, axis := range j.Axes {
		out = out.Add(axis.Scale(u[j.QIndex+k]))
	}
	return out
}
