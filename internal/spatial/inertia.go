package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Inertia is a rigid-body spatial inertia about the origin of its frame.
// H is the first moment of mass (mass times center of mass) and I the
// rotational inertia about the frame origin.
type Inertia struct {
	Mass float64
	H    mgl64.Vec3
	I    mgl64.Mat3
}

// NewInertia builds a spatial inertia from mass, center of mass and the
// rotational inertia about the center of mass.
func NewInertia(mass float64, com mgl64.Vec3, inertiaCOM mgl64.Mat3) Inertia {
	cx := CrossMatrix(com)
	return Inertia{
		Mass: mass,
		H:    com.Mul(mass),
		I:    inertiaCOM.Sub(cx.Mul3(cx).Mul(mass)),
	}
}

// PointMass is a body with all of its mass concentrated at com.
func PointMass(mass float64, com mgl64.Vec3) Inertia {
	return NewInertia(mass, com, mgl64.Mat3{})
}

// Diag returns a diagonal rotational inertia.
func Diag(xx, yy, zz float64) mgl64.Mat3 {
	return Mat3Rows(xx, 0, 0, 0, yy, 0, 0, 0, zz)
}

// CoM returns the center of mass, or the origin for a massless body.
func (in Inertia) CoM() mgl64.Vec3 {
	if in.Mass == 0 {
		return mgl64.Vec3{}
	}
	return in.H.Mul(1 / in.Mass)
}

// Add sums two inertias expressed in the same frame.
func (in Inertia) Add(o Inertia) Inertia {
	return Inertia{
		Mass: in.Mass + o.Mass,
		H:    in.H.Add(o.H),
		I:    in.I.Add(o.I),
	}
}

// MulVector returns the momentum I·v of a body moving with spatial velocity v.
func (in Inertia) MulVector(v Vector) Vector {
	w, vl := v.Angular(), v.Linear()
	return NewVector(
		in.I.Mul3x1(w).Add(in.H.Cross(vl)),
		vl.Mul(in.Mass).Sub(in.H.Cross(w)),
	)
}

// Matrix returns the 6x6 form [I h×; -h× m·1].
func (in Inertia) Matrix() *mat.Dense {
	m := mat.NewDense(6, 6, nil)
	hx := CrossMatrix(in.H)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, in.I.At(i, j))
			m.Set(i, j+3, hx.At(i, j))
			m.Set(i+3, j, -hx.At(i, j))
		}
		m.Set(i+3, i+3, in.Mass)
	}
	return m
}
