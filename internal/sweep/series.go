package sweep

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/composite"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Columns names the per-sample quantities in storage and plotting order.
var Columns = []string{
	"mass",
	"com_x", "com_y", "com_z",
	"vcom_x", "vcom_y", "vcom_z",
	"ang_x", "ang_y", "ang_z",
	"kinetic", "potential", "total",
}

// Row flattens s in Columns order.
func (s Sample) Row() []float64 {
	m := s.Mass
	return []float64{
		m.Total,
		m.CoM[0], m.CoM[1], m.CoM[2],
		m.CoMVelocity[0], m.CoMVelocity[1], m.CoMVelocity[2],
		m.AngularMomentum[0], m.AngularMomentum[1], m.AngularMomentum[2],
		s.Energy.Kinetic, s.Energy.Potential, s.Energy.Total(),
	}
}

// SampleFromRow is the inverse of Row. The derived total column is ignored.
func SampleFromRow(value float64, row []float64) (Sample, error) {
	if len(row) != len(Columns) {
		return Sample{}, fmt.Errorf("sweep: row has %d columns, want %d", len(row), len(Columns))
	}
	return Sample{
		Value: value,
		Mass: composite.Mass{
			Total:           row[0],
			CoM:             mgl64.Vec3{row[1], row[2], row[3]},
			CoMVelocity:     mgl64.Vec3{row[4], row[5], row[6]},
			AngularMomentum: mgl64.Vec3{row[7], row[8], row[9]},
		},
		Energy: composite.Energy{Kinetic: row[10], Potential: row[11]},
	}, nil
}

func columnIndex(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Values returns the swept coordinate of every sample.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Series extracts one named column from samples.
func Series(samples []Sample, column string) ([]float64, error) {
	idx := columnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("sweep: unknown column %q", column)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Row()[idx]
	}
	return out, nil
}

type Summary struct {
	Min, Max  float64
	Mean, Std float64
	ArgMin    int
	ArgMax    int
}

// Summarize returns the extrema and moments of a series. An empty series
// gives the zero Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	s := Summary{
		ArgMin: floats.MinIdx(xs),
		ArgMax: floats.MaxIdx(xs),
		Mean:   stat.Mean(xs, nil),
	}
	s.Min, s.Max = xs[s.ArgMin], xs[s.ArgMax]
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	return s
}
