// Package genvec packs a floating-base pose and joint values into the
// generalized vectors consumed by model.UpdateKinematics.
//
// Position vectors hold translation(3), quaternion x y z(3), the joint
// values and finally quaternion w, 7+n elements in total. Velocity and
// acceleration vectors hold linear(3), angular(3) and the joint rates,
// 6+n elements.
package genvec

import "github.com/go-gl/mathgl/mgl64"

const (
	// PositionOverhead is the number of floating-base slots in a position vector.
	PositionOverhead = 7
	// VelocityOverhead is the number of floating-base slots in a velocity vector.
	VelocityOverhead = 6
)

// PositionSize returns the length of a position vector for n joint values.
func PositionSize(n int) int { return n + PositionOverhead }

// VelocitySize returns the length of a velocity or acceleration vector for
// n joint rates.
func VelocitySize(n int) int { return n + VelocityOverhead }

// AssemblePosition writes pos, orient and joints into out. out must have
// exactly len(joints)+7 elements; otherwise out is left untouched.
func AssemblePosition(pos mgl64.Vec3, orient mgl64.Quat, joints, out []float64) error {
	if want := PositionSize(len(joints)); len(out) != want {
		return &SizeError{Vector: "position", Joints: len(joints), Want: want, Got: len(out)}
	}
	copy(out[0:3], pos[:])
	copy(out[3:6], orient.V[:])
	copy(out[6:], joints)
	out[len(out)-1] = orient.W
	return nil
}

// AssembleVelocity writes the base twist and joint rates into out, which
// must have exactly len(joints)+6 elements.
func AssembleVelocity(linear, angular mgl64.Vec3, joints, out []float64) error {
	return assembleRates("velocity", linear, angular, joints, out)
}

// AssembleAcceleration is AssembleVelocity for accelerations.
func AssembleAcceleration(linear, angular mgl64.Vec3, joints, out []float64) error {
	return assembleRates("acceleration", linear, angular, joints, out)
}

func assembleRates(name string, linear, angular mgl64.Vec3, joints, out []float64) error {
	if want := VelocitySize(len(joints)); len(out) != want {
		return &SizeError{Vector: name, Joints: len(joints), Want: want, Got: len(out)}
	}
	copy(out[0:3], linear[:])
	copy(out[3:6], angular[:])
	copy(out[6:], joints)
	return nil
}

// SplitPosition reads a position vector back. The returned joints slice
// aliases q.
func SplitPosition(q []float64) (pos mgl64.Vec3, orient mgl64.Quat, joints []float64, err error) {
	if len(q) < PositionOverhead {
		return pos, orient, nil, &SizeError{Vector: "position", Want: PositionOverhead, Got: len(q)}
	}
	n := len(q) - 1
	pos = mgl64.Vec3{q[0], q[1], q[2]}
	orient = mgl64.Quat{W: q[n], V: mgl64.Vec3{q[3], q[4], q[5]}}
	return pos, orient, q[6:n], nil
}

// SplitVelocity reads a velocity or acceleration vector back. The returned
// joints slice aliases qdot.
func SplitVelocity(qdot []float64) (linear, angular mgl64.Vec3, joints []float64, err error) {
	if len(qdot) < VelocityOverhead {
		return linear, angular, nil, &SizeError{Vector: "velocity", Want: VelocityOverhead, Got: len(qdot)}
	}
	linear = mgl64.Vec3{qdot[0], qdot[1], qdot[2]}
	angular = mgl64.Vec3{qdot[3], qdot[4], qdot[5]}
	return linear, angular, qdot[6:], nil
}
