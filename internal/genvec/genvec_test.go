package genvec

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
	"gonum.org/v1/gonum/floats"
)

// vecNear compares component-wise with an absolute tolerance, unlike
// mgl64's relative ApproxEqualThreshold which is near-exact around zero.
func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return floats.EqualApprox(a[:], b[:], tol)
}

func TestPositionRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		pos    mgl64.Vec3
		orient mgl64.Quat
		joints []float64
	}{
		{"no joints", mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent(), nil},
		{"three joints", mgl64.Vec3{-0.5, 0, 1e-9}, mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1}), []float64{0.1, -2, math.Pi}},
		{"unnormalized quaternion", mgl64.Vec3{}, mgl64.Quat{W: 2, V: mgl64.Vec3{3, 4, 5}}, []float64{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			q := make([]float64, PositionSize(len(tt.joints)))
			g.Expect(AssemblePosition(tt.pos, tt.orient, tt.joints, q)).To(Succeed())
			g.Expect(q[len(q)-1]).To(Equal(tt.orient.W))

			pos, orient, joints, err := SplitPosition(q)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(pos).To(Equal(tt.pos))
			g.Expect(orient).To(Equal(tt.orient))
			g.Expect(joints).To(HaveLen(len(tt.joints)))
			for i := range tt.joints {
				g.Expect(joints[i]).To(Equal(tt.joints[i]))
			}
		})
	}
}

func TestPositionLayout(t *testing.T) {
	g := NewWithT(t)

	q := make([]float64, 9)
	err := AssemblePosition(mgl64.Vec3{1, 2, 3}, mgl64.Quat{W: 10, V: mgl64.Vec3{4, 5, 6}}, []float64{7, 8}, q)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(q).To(Equal([]float64{1, 2, 3, 4, 5, 6, 7, 8, 10}))
}

func TestAssembleWrongSizeLeavesOutputUntouched(t *testing.T) {
	tests := []struct {
		name     string
		assemble func(out []float64) error
		vector   string
		want     int
	}{
		{"position", func(out []float64) error {
			return AssemblePosition(mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent(), []float64{1, 2}, out)
		}, "position", 9},
		{"velocity", func(out []float64) error {
			return AssembleVelocity(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}, []float64{1, 2}, out)
		}, "velocity", 8},
		{"acceleration", func(out []float64) error {
			return AssembleAcceleration(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}, []float64{1, 2}, out)
		}, "acceleration", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			out := []float64{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
			err := tt.assemble(out)
			g.Expect(errors.Is(err, ErrSizeMismatch)).To(BeTrue())

			var se *SizeError
			g.Expect(errors.As(err, &se)).To(BeTrue())
			g.Expect(se.Vector).To(Equal(tt.vector))
			g.Expect(se.Want).To(Equal(tt.want))
			g.Expect(se.Got).To(Equal(10))
			for _, v := range out {
				g.Expect(v).To(Equal(-1.0))
			}
		})
	}
}

func TestVelocityRoundTrip(t *testing.T) {
	g := NewWithT(t)

	lin, ang := mgl64.Vec3{0.1, 0.2, 0.3}, mgl64.Vec3{-1, 0, 4}
	rates := []float64{5, 6, 7, 8}
	qdot := make([]float64, VelocitySize(len(rates)))
	g.Expect(AssembleVelocity(lin, ang, rates, qdot)).To(Succeed())
	g.Expect(qdot).To(Equal([]float64{0.1, 0.2, 0.3, -1, 0, 4, 5, 6, 7, 8}))

	gotLin, gotAng, gotRates, err := SplitVelocity(qdot)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gotLin).To(Equal(lin))
	g.Expect(gotAng).To(Equal(ang))
	g.Expect(gotRates).To(Equal(rates))
}

func TestSplitTooShort(t *testing.T) {
	g := NewWithT(t)

	_, _, _, err := SplitPosition(make([]float64, 6))
	g.Expect(err).To(MatchError(ErrSizeMismatch))

	_, _, _, err = SplitVelocity(make([]float64, 5))
	g.Expect(err).To(MatchError(ErrSizeMismatch))
}

func TestPositionFeedsFloatingBaseModel(t *testing.T) {
	g := NewWithT(t)

	m := model.New()
	base, err := m.AddBody(model.Root, spatial.Identity(), model.FloatingBase(),
		spatial.PointMass(2, mgl64.Vec3{}), "base")
	g.Expect(err).NotTo(HaveOccurred())
	arm, err := m.AddBody(base, spatial.Translation(mgl64.Vec3{0, 0, 1}), model.RevoluteZ(),
		spatial.PointMass(1, mgl64.Vec3{1, 0, 0}), "arm")
	g.Expect(err).NotTo(HaveOccurred())

	q := make([]float64, m.QSize())
	g.Expect(q).To(HaveLen(PositionSize(1)))
	g.Expect(AssemblePosition(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent(), []float64{0}, q)).To(Succeed())
	g.Expect(m.UpdateKinematics(q, nil, nil)).To(Succeed())

	p, err := m.BodyToBase(arm, mgl64.Vec3{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vecNear(p, mgl64.Vec3{1, 2, 4}, 1e-12)).To(BeTrue())
}

func TestMatchesLayout(t *testing.T) {
	g := NewWithT(t)

	floating := model.New()
	base, err := floating.AddBody(model.Root, spatial.Identity(), model.FloatingBase(),
		spatial.PointMass(2, mgl64.Vec3{}), "base")
	g.Expect(err).NotTo(HaveOccurred())
	_, err = floating.AddBody(base, spatial.Identity(), model.RevoluteZ(), spatial.PointMass(1, mgl64.Vec3{1, 0, 0}), "arm")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(MatchesLayout(floating)).To(BeTrue())

	// seven revolute links give a q of floating-base size without the layout
	chain := model.New()
	parent := model.Root
	for i := 0; i < 7; i++ {
		parent, err = chain.AddBody(parent, spatial.Translation(mgl64.Vec3{0, 0, 1}), model.RevoluteY(),
			spatial.PointMass(1, mgl64.Vec3{}), "")
		g.Expect(err).NotTo(HaveOccurred())
	}
	g.Expect(chain.QSize()).To(Equal(PositionSize(0)))
	g.Expect(MatchesLayout(chain)).To(BeFalse())

	// translation chain without the spherical joint
	slider := model.New()
	_, err = slider.AddBody(model.Root, spatial.Identity(),
		model.MultiAxis(spatial.AxisTX, spatial.AxisTY, spatial.AxisTZ, spatial.AxisRZ),
		spatial.PointMass(1, mgl64.Vec3{}), "slider")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(MatchesLayout(slider)).To(BeFalse())

	// a second spherical joint moves the base w away from the last slot
	twoBalls := model.New()
	base, err = twoBalls.AddBody(model.Root, spatial.Identity(), model.FloatingBase(),
		spatial.PointMass(2, mgl64.Vec3{}), "base")
	g.Expect(err).NotTo(HaveOccurred())
	_, err = twoBalls.AddBody(base, spatial.Identity(), model.Spherical(), spatial.PointMass(1, mgl64.Vec3{1, 0, 0}), "ball")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(MatchesLayout(twoBalls)).To(BeFalse())

	g.Expect(MatchesLayout(model.New())).To(BeFalse())
}
