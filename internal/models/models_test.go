package models

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
	"github.com/san-kum/dyntree/internal/composite"
	"github.com/san-kum/dyntree/internal/model"
	"gonum.org/v1/gonum/floats"
)

// vecNear compares component-wise with an absolute tolerance, unlike
// mgl64's relative ApproxEqualThreshold which is near-exact around zero.
func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return floats.EqualApprox(a[:], b[:], tol)
}

func TestRegistryModelsBuild(t *testing.T) {
	tests := []struct {
		name      string
		dofs      int
		qsize     int
		fixed     int
		totalMass float64
	}{
		{"pendulum", 1, 1, 0, 1},
		{"double_pendulum", 2, 2, 0, 2},
		{"cartpole", 2, 2, 0, 1.1},
		{"planar_arm", 3, 3, 1, 3.2},
		{"drone", 6, 7, 4, 1.2},
		{"humanoid_arm", 6, 6, 2, 3.65},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			m, err := r.GetModel(tt.name)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(m.Validate()).To(Succeed())
			g.Expect(m.DOFCount()).To(Equal(tt.dofs))
			g.Expect(m.QSize()).To(Equal(tt.qsize))
			g.Expect(m.NumFixed()).To(Equal(tt.fixed))

			res, err := composite.NewAccumulator(m).CenterOfMass(m, m.ZeroConfiguration(), nil, true)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(res.Total).To(BeNumerically("~", tt.totalMass, 1e-12))
		})
	}
}

func TestRegistryListsEveryModelSorted(t *testing.T) {
	g := NewWithT(t)

	names := NewRegistry().ListModels()
	g.Expect(names).To(Equal([]string{
		"cartpole", "double_pendulum", "drone", "humanoid_arm", "pendulum", "planar_arm",
	}))
}

func TestRegistryUnknownModel(t *testing.T) {
	g := NewWithT(t)

	_, err := NewRegistry().GetModel("nope")
	g.Expect(err).To(MatchError(ContainSubstring("unknown model")))
}

func TestPendulumCenterOfMass(t *testing.T) {
	g := NewWithT(t)

	p := NewPendulum()
	p.Length = 2
	m, err := p.Build()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m.Gravity).To(Equal(mgl64.Vec3{0, 0, -DefaultGravity}))

	res, err := composite.NewAccumulator(m).CenterOfMass(m, []float64{0}, nil, true)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vecNear(res.CoM, mgl64.Vec3{0, 0, -2}, 1e-12)).To(BeTrue())
}

func TestPlanarArmToolAtTip(t *testing.T) {
	g := NewWithT(t)

	a := NewPlanarArm()
	m, err := a.Build()
	g.Expect(err).NotTo(HaveOccurred())

	tool, err := m.BodyID("tool")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tool.IsFixed()).To(BeTrue())

	g.Expect(m.UpdateKinematics(m.ZeroConfiguration(), nil, nil)).To(Succeed())
	p, err := m.BodyToBase(tool, mgl64.Vec3{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vecNear(p, mgl64.Vec3{1.5, 0, 0}, 1e-12)).To(BeTrue())

	res, err := composite.NewAccumulator(m).CenterOfMass(m, m.ZeroConfiguration(), nil, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.CoM[0]).To(BeNumerically("~", (0.25+0.75+1.25+0.2*1.5)/3.2, 1e-12))
}

func TestPlanarArmNeedsLinks(t *testing.T) {
	g := NewWithT(t)

	a := NewPlanarArm()
	a.Links = 0
	_, err := a.Build()
	g.Expect(err).To(HaveOccurred())
}

func TestDroneIsSymmetric(t *testing.T) {
	g := NewWithT(t)

	m, err := NewDrone().Build()
	g.Expect(err).NotTo(HaveOccurred())

	frame, err := m.BodyID("frame")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(frame).To(Equal(model.Movable(4)))
	for i := 1; i < 4; i++ {
		g.Expect(m.IsVirtual(i)).To(BeTrue())
	}

	res, err := composite.NewAccumulator(m).CenterOfMass(m, m.ZeroConfiguration(), nil, true)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vecNear(res.CoM, mgl64.Vec3{}, 1e-12)).To(BeTrue())
}

func TestHumanoidArmHangsFromShoulder(t *testing.T) {
	g := NewWithT(t)

	m, err := NewHumanoidArm().Build()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m.UpdateKinematics(m.ZeroConfiguration(), nil, nil)).To(Succeed())

	hand, err := m.BodyID("hand")
	g.Expect(err).NotTo(HaveOccurred())
	p, err := m.BodyToBase(hand, mgl64.Vec3{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vecNear(p, mgl64.Vec3{0, 0.2, 1.4 - 0.3 - 0.27 - 0.08}, 1e-12)).To(BeTrue())
}
