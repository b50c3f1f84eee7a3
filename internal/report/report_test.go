package report_test

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/report"
	"github.com/san-kum/dyntree/internal/spatial"
)

func unit(m float64) spatial.Inertia {
	return spatial.PointMass(m, mgl64.Vec3{0.5, 0, 0})
}

func mustAdd(m *model.Model, parent model.BodyID, x spatial.Transform, j model.Joint, name string) model.BodyID {
	GinkgoHelper()
	id, err := m.AddBody(parent, x, j, unit(1), name)
	Expect(err).NotTo(HaveOccurred())
	return id
}

// arm: two revolute links along x with a tool welded to the tip.
func arm() *model.Model {
	m := model.New()
	upper := mustAdd(m, model.Root, spatial.Identity(), model.RevoluteY(), "upper")
	lower := mustAdd(m, upper, spatial.Translation(mgl64.Vec3{1, 0, 0}), model.RevoluteY(), "lower")
	mustAdd(m, lower, spatial.Translation(mgl64.Vec3{1, 0, 0}), model.FixedJoint(), "tool")
	return m
}

var _ = Describe("DOFName", func() {
	It("maps every canonical axis to its label", func() {
		seen := map[string]bool{}
		for _, c := range []struct {
			axis spatial.Vector
			want string
		}{
			{spatial.AxisRX, "RX"},
			{spatial.AxisRY, "RY"},
			{spatial.AxisRZ, "RZ"},
			{spatial.AxisTX, "TX"},
			{spatial.AxisTY, "TY"},
			{spatial.AxisTZ, "TZ"},
		} {
			Expect(report.DOFName(c.axis)).To(Equal(c.want))
			seen[c.want] = true
		}
		Expect(seen).To(HaveLen(6))
	})

	It("prints other axes as custom with shortest components", func() {
		Expect(report.DOFName(spatial.Vector{1, 0, 0, 0, 0, 0.5})).To(Equal("custom(1 0 0 0 0 0.5)"))
		Expect(report.DOFName(spatial.Vector{0, 0, 0, 0, 0, 0})).To(Equal("custom(0 0 0 0 0 0)"))
		Expect(report.DOFName(spatial.Vector{0, 2, 0, 0, 0, 0})).To(Equal("custom(0 2 0 0 0 0)"))
	})
})

var _ = Describe("ResolveName", func() {
	It("returns stored names of real and fixed bodies", func() {
		m := arm()
		Expect(report.ResolveName(m, model.Movable(1))).To(Equal("upper"))
		Expect(report.ResolveName(m, model.Fixed(0))).To(Equal("tool"))
		Expect(report.ResolveName(m, model.Root)).To(Equal(model.RootName))
	})

	It("borrows the name at the end of a virtual chain", func() {
		m := model.New()
		pelvis := mustAdd(m, model.Root, spatial.Identity(), model.FloatingBase(), "pelvis")
		Expect(pelvis.Index).To(Equal(4))
		for i := 1; i <= 4; i++ {
			Expect(report.ResolveName(m, model.Movable(i))).To(Equal("pelvis"))
		}
	})

	It("is empty for a forking or dangling virtual body", func() {
		m := model.New()
		v, err := m.AddVirtualBody(model.Root, spatial.Identity(), model.RevoluteX(), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(report.ResolveName(m, v)).To(BeEmpty())

		mustAdd(m, v, spatial.Identity(), model.RevoluteY(), "a")
		mustAdd(m, v, spatial.Identity(), model.RevoluteY(), "b")
		Expect(report.ResolveName(m, v)).To(BeEmpty())
	})
})

var _ = Describe("Reporter", func() {
	Describe("Hierarchy", func() {
		It("indents children and lists fixed bodies", func() {
			out, err := report.New(arm()).Hierarchy()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT\n" +
				"  upper [ RY ]\n" +
				"    lower [ RY ]\n" +
				"      tool [fixed]\n"))
		})

		It("collapses a floating base into one line", func() {
			m := model.New()
			pelvis := mustAdd(m, model.Root, spatial.Identity(), model.FloatingBase(), "pelvis")
			mustAdd(m, pelvis, spatial.Identity(), model.RevoluteY(), "thigh")

			out, err := report.New(m).Hierarchy()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT\n" +
				"  pelvis [ TX, TY, TZ, RX, RY, RZ ]\n" +
				"    thigh [ RY ]\n"))
		})

		It("lists fixed bodies hanging off any link of a collapsed chain", func() {
			m := model.New()
			mustAdd(m, model.Root, spatial.Identity(), model.MultiAxis(spatial.AxisRX, spatial.AxisRY), "shoulder")
			mustAdd(m, model.Movable(1), spatial.Identity(), model.FixedJoint(), "marker")

			out, err := report.New(m).Hierarchy()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT\n" +
				"  shoulder [ RX, RY ]\n" +
				"    marker [fixed]\n"))
		})

		It("ends a virtual leaf chain with end", func() {
			m := model.New()
			_, err := m.AddVirtualBody(model.Root, spatial.Identity(),
				model.MultiAxis(spatial.AxisTX, spatial.AxisTZ), "")
			Expect(err).NotTo(HaveOccurred())

			out, err := report.New(m).Hierarchy()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT\n   [ TX, TZ, end ]\n"))
		})

		It("visits siblings in ascending order with fixed bodies after movable children", func() {
			m := model.New()
			a := mustAdd(m, model.Root, spatial.Identity(), model.RevoluteZ(), "a")
			mustAdd(m, model.Root, spatial.Identity(), model.PrismaticX(), "b")
			mustAdd(m, a, spatial.Identity(), model.FixedJoint(), "a_tip")
			mustAdd(m, a, spatial.Identity(), model.RevoluteX(), "a_child")

			out, err := report.New(m).Hierarchy()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT\n" +
				"  a [ RZ ]\n" +
				"    a_child [ RX ]\n" +
				"    a_tip [fixed]\n" +
				"  b [ TX ]\n"))
		})

		It("handles deep chains without recursion", func() {
			m := model.New()
			parent := model.Root
			for i := 0; i < 5000; i++ {
				id, err := m.AddBody(parent, spatial.Identity(), model.RevoluteZ(), unit(1), "")
				Expect(err).NotTo(HaveOccurred())
				parent = id
			}
			out, err := report.New(m).Hierarchy()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveSuffix("[ RZ ]\n"))
		})

		When("a virtual body has several children", func() {
			var m *model.Model

			BeforeEach(func() {
				m = model.New()
				v, err := m.AddVirtualBody(model.Root, spatial.Identity(), model.RevoluteX(), "")
				Expect(err).NotTo(HaveOccurred())
				a := mustAdd(m, v, spatial.Identity(), model.RevoluteY(), "a")
				mustAdd(m, v, spatial.Identity(), model.RevoluteY(), "b")
				mustAdd(m, a, spatial.Identity(), model.RevoluteY(), "c")
			})

			It("returns a fan-out error and no output", func() {
				out, err := report.New(m).Hierarchy()
				Expect(out).To(BeEmpty())
				Expect(errors.Is(err, report.ErrVirtualFanOut)).To(BeTrue())

				var fe *report.FanOutError
				Expect(errors.As(err, &fe)).To(BeTrue())
				Expect(fe.Body).To(Equal(1))
				Expect(fe.Children).To(Equal([]int{2, 3}))
				Expect(fe.ChildNames).To(Equal([]string{"a", "b"}))
			})

			It("enumerates only the immediate children in the diagnostic", func() {
				_, err := report.New(m).Hierarchy()
				var fe *report.FanOutError
				Expect(errors.As(err, &fe)).To(BeTrue())
				Expect(fe.Diagnostic()).To(ContainSubstring("id: 2 name: a\n"))
				Expect(fe.Diagnostic()).To(ContainSubstring("id: 3 name: b\n"))
				Expect(fe.Diagnostic()).NotTo(ContainSubstring("name: c"))
			})
		})
	})

	Describe("DOFOverview", func() {
		It("numbers every slot contiguously", func() {
			Expect(report.New(arm()).DOFOverview()).To(Equal("  0: upper_RY\n  1: lower_RY\n"))
		})

		It("labels each DOF of a floating base with the real body name", func() {
			m := model.New()
			pelvis := mustAdd(m, model.Root, spatial.Identity(), model.FloatingBase(), "pelvis")
			mustAdd(m, pelvis, spatial.Identity(), model.RevoluteY(), "thigh")

			Expect(report.New(m).DOFOverview()).To(Equal("" +
				"  0: pelvis_TX\n" +
				"  1: pelvis_TY\n" +
				"  2: pelvis_TZ\n" +
				"  3: pelvis_RX\n" +
				"  4: pelvis_RY\n" +
				"  5: pelvis_RZ\n" +
				"  6: thigh_RY\n"))
		})

		It("keeps the slot and warns when a name cannot be resolved", func() {
			m := model.New()
			mustAdd(m, model.Root, spatial.Identity(), model.RevoluteX(), "")

			var buf bytes.Buffer
			r := report.New(m)
			r.Logger = slog.New(slog.NewTextHandler(&buf, nil))

			Expect(r.DOFOverview()).To(Equal("  0: _RX\n"))
			Expect(buf.String()).To(ContainSubstring("level=WARN"))
			Expect(buf.String()).To(ContainSubstring("body=1"))
		})
	})

	Describe("NamedBodyOrigins", func() {
		It("uses the zero configuration when q is nil", func() {
			out, err := report.New(arm()).NamedBodyOrigins(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("" +
				"ROOT(0): 0 0 0\n" +
				"upper(1): 0 0 0\n" +
				"lower(2): 1 0 0\n" +
				"tool(0,2147483647): 2 0 0\n"))
		})

		It("places a floating base at its translation", func() {
			m := model.New()
			mustAdd(m, model.Root, spatial.Identity(), model.FloatingBase(), "pelvis")

			out, err := report.New(m).NamedBodyOrigins([]float64{1, 2.5, -3, 0, 0, 0, 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT(0): 0 0 0\npelvis(4): 1 2.5 -3\n"))
		})

		It("follows prismatic joints", func() {
			m := model.New()
			slider := mustAdd(m, model.Root, spatial.Identity(), model.PrismaticX(), "slider")
			mustAdd(m, slider, spatial.Translation(mgl64.Vec3{0, 0, 0.5}), model.PrismaticZ(), "lift")

			out, err := report.New(m).NamedBodyOrigins([]float64{0.25, 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT(0): 0 0 0\nslider(1): 0.25 0 0\nlift(2): 0.25 0 1.5\n"))
		})

		It("skips unnamed movable bodies", func() {
			m := model.New()
			mustAdd(m, model.Root, spatial.Identity(), model.RevoluteX(), "")
			mustAdd(m, model.Root, spatial.Identity(), model.RevoluteX(), "named")

			out, err := report.New(m).NamedBodyOrigins(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("ROOT(0): 0 0 0\nnamed(2): 0 0 0\n"))
		})

		It("rejects a q of the wrong size", func() {
			_, err := report.New(arm()).NamedBodyOrigins([]float64{1})
			Expect(errors.Is(err, model.ErrDimensionMismatch)).To(BeTrue())
		})
	})
})

var _ = Describe("DOFLabels", func() {
	It("has one label per generalized velocity slot", func() {
		m := model.New()
		mustAdd(m, model.Root, spatial.Identity(), model.Spherical(), "ball")
		mustAdd(m, model.Movable(1), spatial.Identity(), model.Helical(spatial.Vector{0, 0, 1, 0, 0, 0.1}), "screw")

		labels := report.New(m).DOFLabels()
		Expect(labels).To(HaveLen(m.DOFCount()))
		Expect(labels).To(Equal([]string{
			"ball_RX", "ball_RY", "ball_RZ", "screw_custom(0 0 1 0 0 0.1)",
		}))
	})
})
