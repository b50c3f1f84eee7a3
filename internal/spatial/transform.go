package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Transform is a Plücker transform from a parent frame A to a child frame B.
// E rotates A coordinates into B coordinates and R is the origin of B
// expressed in A.
type Transform struct {
	E mgl64.Mat3
	R mgl64.Vec3
}

func Identity() Transform {
	return Transform{E: mgl64.Ident3()}
}

func Translation(r mgl64.Vec3) Transform {
	return Transform{E: mgl64.Ident3(), R: r}
}

// Rotation returns the transform into a frame rotated by angle (radians)
// about axis. The axis is normalized; a zero axis yields the identity.
func Rotation(angle float64, axis mgl64.Vec3) Transform {
	n := axis.Len()
	if n == 0 {
		return Identity()
	}
	a := axis.Mul(1 / n)
	x, y, z := a[0], a[1], a[2]
	s, c := math.Sincos(angle)
	t := 1 - c

	return Transform{E: Mat3Rows(
		x*x*t+c, y*x*t+z*s, x*z*t-y*s,
		x*y*t-z*s, y*y*t+c, y*z*t+x*s,
		x*z*t+y*s, y*z*t-x*s, z*z*t+c,
	)}
}

func RotX(angle float64) Transform { return Rotation(angle, mgl64.Vec3{1, 0, 0}) }
func RotY(angle float64) Transform { return Rotation(angle, mgl64.Vec3{0, 1, 0}) }
func RotZ(angle float64) Transform { return Rotation(angle, mgl64.Vec3{0, 0, 1}) }

// FromQuat returns the transform into a frame whose orientation relative to
// the parent is q.
func FromQuat(q mgl64.Quat) Transform {
	q = q.Normalize()
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]
	return Transform{E: Mat3Rows(
		1-2*y*y-2*z*z, 2*x*y+2*w*z, 2*x*z-2*w*y,
		2*x*y-2*w*z, 1-2*x*x-2*z*z, 2*y*z+2*w*x,
		2*x*z+2*w*y, 2*y*z-2*w*x, 1-2*x*x-2*y*y,
	)}
}

// Mul composes two transforms. x.Mul(y) maps through y first, then x.
func (x Transform) Mul(y Transform) Transform {
	return Transform{
		E: x.E.Mul3(y.E),
		R: y.R.Add(y.E.Transpose().Mul3x1(x.R)),
	}
}

func (x Transform) Inverse() Transform {
	return Transform{
		E: x.E.Transpose(),
		R: x.E.Mul3x1(x.R).Mul(-1),
	}
}

// Apply maps a motion vector from the parent into the child frame.
func (x Transform) Apply(v Vector) Vector {
	w := v.Angular()
	vrxw := v.Linear().Sub(x.R.Cross(w))
	return NewVector(x.E.Mul3x1(w), x.E.Mul3x1(vrxw))
}

// ApplyTranspose maps a force vector from the child back into the parent frame.
func (x Transform) ApplyTranspose(f Vector) Vector {
	et := x.E.Transpose()
	etw := et.Mul3x1(f.Angular())
	etf := et.Mul3x1(f.Linear())
	return NewVector(etw.Add(x.R.Cross(etf)), etf)
}

// ApplyAdjoint maps a force vector from the parent into the child frame.
func (x Transform) ApplyAdjoint(f Vector) Vector {
	n := f.Angular().Sub(x.R.Cross(f.Linear()))
	return NewVector(x.E.Mul3x1(n), x.E.Mul3x1(f.Linear()))
}

// ApplyTransposeInertia expresses a child-frame inertia in the parent frame.
func (x Transform) ApplyTransposeInertia(in Inertia) Inertia {
	et := x.E.Transpose()
	eth := et.Mul3x1(in.H)
	etmr := eth.Add(x.R.Mul(in.Mass))
	rx := CrossMatrix(x.R)

	rot := et.Mul3(in.I).Mul3(x.E).
		Sub(rx.Mul3(CrossMatrix(eth))).
		Sub(CrossMatrix(etmr).Mul3(rx))

	return Inertia{Mass: in.Mass, H: etmr, I: rot}
}

// Matrix returns the 6x6 motion transform matrix.
func (x Transform) Matrix() *mat.Dense {
	m := mat.NewDense(6, 6, nil)
	erx := x.E.Mul3(CrossMatrix(x.R)).Mul(-1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, x.E.At(i, j))
			m.Set(i+3, j+3, x.E.At(i, j))
			m.Set(i+3, j, erx.At(i, j))
		}
	}
	return m
}

// Mat3Rows builds a matrix from its entries in row-major order.
func Mat3Rows(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) mgl64.Mat3 {
	// mgl64 stores matrices column-major.
	return mgl64.Mat3{m00, m10, m20, m01, m11, m21, m02, m12, m22}
}

// CrossMatrix returns the skew-symmetric matrix v× with (v×)u = v × u.
func CrossMatrix(v mgl64.Vec3) mgl64.Mat3 {
	return Mat3Rows(
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	)
}
