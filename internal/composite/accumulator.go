package composite

import (
	"context"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

// Mass is the aggregate mass state of a tree. Velocity and angular momentum
// are expressed in base coordinates; the angular momentum is taken about
// the center of mass.
type Mass struct {
	Total           float64
	CoM             mgl64.Vec3
	CoMVelocity     mgl64.Vec3
	AngularMomentum mgl64.Vec3
}

// Accumulator is the scratch state of the composite-rigid-body pass: one
// composite inertia and one composite momentum per movable body. It is
// reset on every call and must not be shared between goroutines.
type Accumulator struct {
	// Logger receives a debug record per aggregation. Nil uses slog.Default.
	Logger *slog.Logger

	ic []spatial.Inertia
	hc []spatial.Vector
}

// NewAccumulator returns an accumulator sized for m. It grows on demand if
// used with a larger tree.
func NewAccumulator(m *model.Model) *Accumulator {
	n := m.NumBodies()
	return &Accumulator{
		ic: make([]spatial.Inertia, n),
		hc: make([]spatial.Vector, n),
	}
}

func (a *Accumulator) reset(m *model.Model) {
	n := m.NumBodies()
	if cap(a.ic) < n {
		a.ic = make([]spatial.Inertia, n)
		a.hc = make([]spatial.Vector, n)
	}
	a.ic = a.ic[:n]
	a.hc = a.hc[:n]
	for i := 1; i < n; i++ {
		a.ic[i] = m.Inertia(i)
		a.hc[i] = a.ic[i].MulVector(m.Velocity(i))
	}
}

func (a *Accumulator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// CenterOfMass aggregates the inertia and momentum of every movable body
// into base coordinates. With updateKinematics set, the kinematic state of m
// is refreshed from q and qdot first; otherwise the last update is used.
func (a *Accumulator) CenterOfMass(m *model.Model, q, qdot []float64, updateKinematics bool) (Mass, error) {
	if updateKinematics {
		if err := m.UpdateKinematics(q, qdot, nil); err != nil {
			return Mass{}, err
		}
	}
	a.reset(m)

	var itot spatial.Inertia
	var htot spatial.Vector

	// parent < child, so descending order finishes every subtree before
	// its parent is moved
	for i := m.NumBodies() - 1; i > 0; i-- {
		parent := m.Body(i).Parent
		x := m.LambdaTransform(i)

		ic := x.ApplyTransposeInertia(a.ic[i])
		hc := x.ApplyTranspose(a.hc[i])
		if parent != 0 {
			a.ic[parent] = a.ic[parent].Add(ic)
			a.hc[parent] = a.hc[parent].Add(hc)
		} else {
			itot = itot.Add(ic)
			htot = htot.Add(hc)
		}
	}

	if !(itot.Mass > 0) {
		return Mass{}, &DegenerateMassError{Mass: itot.Mass, Bodies: m.NumBodies() - 1}
	}

	res := Mass{
		Total:       itot.Mass,
		CoM:         itot.H.Mul(1 / itot.Mass),
		CoMVelocity: htot.Linear().Mul(1 / itot.Mass),
	}
	res.AngularMomentum = spatial.Translation(res.CoM).ApplyAdjoint(htot).Angular()

	a.logger().LogAttrs(context.Background(), slog.LevelDebug, "center of mass",
		slog.Float64("mass", res.Total),
		slog.Any("com", res.CoM),
		slog.Any("htot", htot),
	)
	return res, nil
}
