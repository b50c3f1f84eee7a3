package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Vector is a spatial motion or force vector. Components 0..2 hold the
// angular part, 3..5 the linear part.
type Vector [6]float64

// Unit axes of the six canonical single-DOF joints.
var (
	AxisRX = Vector{1, 0, 0, 0, 0, 0}
	AxisRY = Vector{0, 1, 0, 0, 0, 0}
	AxisRZ = Vector{0, 0, 1, 0, 0, 0}
	AxisTX = Vector{0, 0, 0, 1, 0, 0}
	AxisTY = Vector{0, 0, 0, 0, 1, 0}
	AxisTZ = Vector{0, 0, 0, 0, 0, 1}
)

func NewVector(angular, linear mgl64.Vec3) Vector {
	return Vector{angular[0], angular[1], angular[2], linear[0], linear[1], linear[2]}
}

func (v Vector) Angular() mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }
func (v Vector) Linear() mgl64.Vec3  { return mgl64.Vec3{v[3], v[4], v[5]} }

func (v Vector) Add(o Vector) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

func (v Vector) Sub(o Vector) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

func (v Vector) Scale(f float64) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] * f
	}
	return r
}

func (v Vector) Dot(o Vector) float64 {
	sum := 0.0
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

func (v Vector) IsZero() bool {
	return v == Vector{}
}

// CrossMotion returns v ×m, the spatial cross product acting on motion vectors.
func (v Vector) CrossMotion(m Vector) Vector {
	w, vl := v.Angular(), v.Linear()
	mw, ml := m.Angular(), m.Linear()
	return NewVector(w.Cross(mw), w.Cross(ml).Add(vl.Cross(mw)))
}

// CrossForce returns v ×*, the spatial cross product acting on force vectors.
func (v Vector) CrossForce(f Vector) Vector {
	w, vl := v.Angular(), v.Linear()
	fw, fl := f.Angular(), f.Linear()
	return NewVector(w.Cross(fw).Add(vl.Cross(fl)), w.Cross(fl))
}

// VecDense copies v into a gonum column vector.
func (v Vector) VecDense() *mat.VecDense {
	data := make([]float64, 6)
	copy(data, v[:])
	return mat.NewVecDense(6, data)
}

// PointVelocity splits a spatial velocity expressed at the frame origin into
// the linear velocity of point and the angular velocity.
func PointVelocity(v Vector, point mgl64.Vec3) (linear, angular mgl64.Vec3) {
	angular = v.Angular()
	linear = v.Linear().Sub(point.Cross(angular))
	return linear, angular
}

// ForceAt returns the spatial force produced by force acting at point.
func ForceAt(point, force mgl64.Vec3) Vector {
	return NewVector(point.Cross(force), force)
}
