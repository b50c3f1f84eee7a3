package composite

import (
	"context"
	"log/slog"

	"github.com/san-kum/dyntree/internal/model"
	"gonum.org/v1/gonum/mat"
)

// KineticEnergy returns Σ ½ vᵢᵀ Iᵢ vᵢ over all movable bodies.
func (a *Accumulator) KineticEnergy(m *model.Model, q, qdot []float64, updateKinematics bool) (float64, error) {
	if updateKinematics {
		if err := m.UpdateKinematics(q, qdot, nil); err != nil {
			return 0, err
		}
	}

	total := 0.0
	for i := 1; i < m.NumBodies(); i++ {
		v := m.Velocity(i)
		if v.IsZero() {
			continue
		}
		vd := v.VecDense()
		total += 0.5 * mat.Inner(vd, m.Inertia(i).Matrix(), vd)
	}
	return total, nil
}

// PotentialEnergy returns m·com·(-g) for the configuration q.
func (a *Accumulator) PotentialEnergy(m *model.Model, q []float64, updateKinematics bool) (float64, error) {
	res, err := a.CenterOfMass(m, q, make([]float64, m.DOFCount()), updateKinematics)
	if err != nil {
		return 0, err
	}

	pe := res.Total * res.CoM.Dot(m.Gravity.Mul(-1))
	a.logger().LogAttrs(context.Background(), slog.LevelDebug, "potential energy",
		slog.Float64("mass", res.Total),
		slog.Any("com", res.CoM),
		slog.Float64("energy", pe),
	)
	return pe, nil
}

// Energy is the kinetic and potential energy of one configuration.
type Energy struct {
	Kinetic   float64
	Potential float64
}

func (e Energy) Total() float64 { return e.Kinetic + e.Potential }

// Energies evaluates both energies with a single kinematics update.
func (a *Accumulator) Energies(m *model.Model, q, qdot []float64) (Energy, error) {
	if err := m.UpdateKinematics(q, qdot, nil); err != nil {
		return Energy{}, err
	}
	ke, err := a.KineticEnergy(m, q, qdot, false)
	if err != nil {
		return Energy{}, err
	}
	pe, err := a.PotentialEnergy(m, q, false)
	if err != nil {
		return Energy{}, err
	}
	return Energy{Kinetic: ke, Potential: pe}, nil
}
