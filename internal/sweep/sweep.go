package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/san-kum/dyntree/internal/composite"
	"github.com/san-kum/dyntree/internal/model"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidParams = errors.New("sweep: invalid parameters")

// Params selects the swept slot and its range. DOF indexes the generalized
// velocity vector; joint slots share their index with the position vector.
type Params struct {
	DOF   int
	From  float64
	To    float64
	Steps int
	// Workers caps the number of goroutines. Zero uses GOMAXPROCS.
	Workers int
}

func (p Params) Validate(m *model.Model) error {
	if p.Steps < 2 {
		return fmt.Errorf("%w: need at least 2 steps, got %d", ErrInvalidParams, p.Steps)
	}
	if p.DOF < 0 || p.DOF >= m.DOFCount() {
		return fmt.Errorf("%w: dof %d out of range [0, %d)", ErrInvalidParams, p.DOF, m.DOFCount())
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidParams, p.Workers)
	}
	return nil
}

// Value returns the coordinate of sample i; the last sample lands on To.
func (p Params) Value(i int) float64 {
	if i == p.Steps-1 {
		return p.To
	}
	return p.From + (p.To-p.From)*float64(i)/float64(p.Steps-1)
}

func (p Params) workers() int {
	w := p.Workers
	if w == 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > p.Steps {
		w = p.Steps
	}
	return w
}

type Sample struct {
	Value  float64
	Mass   composite.Mass
	Energy composite.Energy
}

type Result struct {
	Params  Params
	Samples []Sample
}

// Runner evaluates sweeps. The zero value is ready to use.
type Runner struct {
	// Logger is handed to every worker's accumulator. Nil uses slog.Default.
	Logger *slog.Logger
}

// Run evaluates p on m around the base configuration q (nil selects the
// zero configuration) with joint velocities qdot (nil means at rest).
func (r *Runner) Run(ctx context.Context, m *model.Model, q, qdot []float64, p Params) (*Result, error) {
	if err := p.Validate(m); err != nil {
		return nil, err
	}
	if q == nil {
		q = m.ZeroConfiguration()
	}
	if len(q) != m.QSize() {
		return nil, &model.DimensionError{Vector: "q", Want: m.QSize(), Got: len(q)}
	}
	if qdot != nil && len(qdot) != m.DOFCount() {
		return nil, &model.DimensionError{Vector: "qdot", Want: m.DOFCount(), Got: len(qdot)}
	}

	samples := make([]Sample, p.Steps)
	workers := p.workers()
	chunk := (p.Steps + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < p.Steps; start += chunk {
		end := min(start+chunk, p.Steps)

		wm := m.Clone()
		acc := composite.NewAccumulator(wm)
		acc.Logger = r.Logger
		wq := append([]float64(nil), q...)

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				s, err := evaluate(wm, acc, wq, qdot, p.DOF, p.Value(i))
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				samples[i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Params: p, Samples: samples}, nil
}

func evaluate(m *model.Model, acc *composite.Accumulator, q, qdot []float64, dof int, value float64) (Sample, error) {
	q[dof] = value

	mass, err := acc.CenterOfMass(m, q, qdot, true)
	if err != nil {
		return Sample{}, err
	}
	ke, err := acc.KineticEnergy(m, q, qdot, false)
	if err != nil {
		return Sample{}, err
	}
	pe, err := acc.PotentialEnergy(m, q, false)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Value:  value,
		Mass:   mass,
		Energy: composite.Energy{Kinetic: ke, Potential: pe},
	}, nil
}
