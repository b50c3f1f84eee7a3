package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

func pendulum(t *testing.T, mass, length float64) *model.Model {
	t.Helper()
	m := model.New()
	if _, err := m.AddBody(model.Root, spatial.Identity(), model.RevoluteY(),
		spatial.PointMass(mass, mgl64.Vec3{0, 0, -length}), "bob"); err != nil {
		t.Fatalf("add body: %v", err)
	}
	return m
}

func TestParamsValue(t *testing.T) {
	p := Params{From: -1, To: 1, Steps: 5}
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i, w := range want {
		if got := p.Value(i); math.Abs(got-w) > 1e-15 {
			t.Errorf("Value(%d) = %g, want %g", i, got, w)
		}
	}
	if p.Value(4) != 1 {
		t.Error("last sample must land exactly on To")
	}
}

func TestRunPendulumPotential(t *testing.T) {
	g := NewWithT(t)
	const mass, length = 2.0, 1.5

	m := pendulum(t, mass, length)
	res, err := (&Runner{}).Run(context.Background(), m, nil, nil, Params{
		DOF: 0, From: 0, To: math.Pi, Steps: 13, Workers: 3,
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Samples).To(HaveLen(13))

	for i, s := range res.Samples {
		theta := res.Params.Value(i)
		g.Expect(s.Value).To(Equal(theta))
		g.Expect(s.Mass.Total).To(BeNumerically("~", mass, 1e-12))
		g.Expect(s.Mass.CoM[2]).To(BeNumerically("~", -length*math.Cos(theta), 1e-12))
		g.Expect(s.Energy.Kinetic).To(BeZero())
		g.Expect(s.Energy.Potential).To(BeNumerically("~", -mass*9.81*length*math.Cos(theta), 1e-9))
	}
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	g := NewWithT(t)

	m := pendulum(t, 1, 1)
	qdot := []float64{2}
	p := Params{DOF: 0, From: -2, To: 2, Steps: 17}

	var results []*Result
	for _, w := range []int{1, 2, 5, 32} {
		p.Workers = w
		res, err := (&Runner{}).Run(context.Background(), m, []float64{0}, qdot, p)
		g.Expect(err).NotTo(HaveOccurred())
		results = append(results, res)
	}
	for _, res := range results[1:] {
		g.Expect(res.Samples).To(Equal(results[0].Samples))
	}
	g.Expect(results[0].Samples[0].Energy.Kinetic).To(BeNumerically("~", 0.5*1*1*4, 1e-12))
}

func TestRunLeavesInputsAlone(t *testing.T) {
	g := NewWithT(t)

	m := pendulum(t, 1, 1)
	q := []float64{0.25}
	_, err := (&Runner{}).Run(context.Background(), m, q, nil, Params{DOF: 0, From: 0, To: 1, Steps: 4})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(q).To(Equal([]float64{0.25}))
}

func TestRunRejectsBadInput(t *testing.T) {
	m := pendulum(t, 1, 1)

	tests := []struct {
		name string
		q    []float64
		qdot []float64
		p    Params
		want error
	}{
		{"one step", nil, nil, Params{Steps: 1}, ErrInvalidParams},
		{"dof out of range", nil, nil, Params{DOF: 1, Steps: 3}, ErrInvalidParams},
		{"negative workers", nil, nil, Params{Steps: 3, Workers: -1}, ErrInvalidParams},
		{"short q", []float64{}, nil, Params{Steps: 3}, model.ErrDimensionMismatch},
		{"long qdot", nil, []float64{1, 2}, Params{Steps: 3}, model.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Runner{}).Run(context.Background(), m, tt.q, tt.qdot, tt.p)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	g := NewWithT(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Runner{}).Run(ctx, pendulum(t, 1, 1), nil, nil, Params{Steps: 100})
	g.Expect(errors.Is(err, context.Canceled)).To(BeTrue())
}

func TestRowRoundTrip(t *testing.T) {
	g := NewWithT(t)

	m := pendulum(t, 1, 1)
	res, err := (&Runner{}).Run(context.Background(), m, nil, []float64{1}, Params{From: 0.3, To: 0.6, Steps: 2})
	g.Expect(err).NotTo(HaveOccurred())

	s := res.Samples[1]
	row := s.Row()
	g.Expect(row).To(HaveLen(len(Columns)))

	back, err := SampleFromRow(s.Value, row)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(back).To(Equal(s))

	_, err = SampleFromRow(0, row[:3])
	g.Expect(err).To(HaveOccurred())
}

func TestSeriesAndSummary(t *testing.T) {
	g := NewWithT(t)

	m := pendulum(t, 1, 1)
	res, err := (&Runner{}).Run(context.Background(), m, nil, nil, Params{From: -math.Pi, To: math.Pi, Steps: 9})
	g.Expect(err).NotTo(HaveOccurred())

	pe, err := Series(res.Samples, "potential")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pe).To(HaveLen(9))

	sum := Summarize(pe)
	g.Expect(sum.ArgMin).To(Equal(4))
	g.Expect(sum.Min).To(BeNumerically("~", -9.81, 1e-9))
	g.Expect(sum.Max).To(BeNumerically("~", 9.81, 1e-9))

	g.Expect(Values(res.Samples)[8]).To(Equal(math.Pi))

	_, err = Series(res.Samples, "nope")
	g.Expect(err).To(HaveOccurred())

	g.Expect(Summarize(nil)).To(Equal(Summary{}))
}
