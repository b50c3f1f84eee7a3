package models

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

type DoublePendulum struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		Gravity: DefaultGravity,
	}
}

// Build hangs two rods along -z, both hinged about y.
func (d *DoublePendulum) Build() (*model.Model, error) {
	down := mgl64.Vec3{0, 0, -1}
	b := newTree(d.Gravity)
	upper := b.add(model.Root, spatial.Identity(), model.RevoluteY(), rod(d.M1, d.L1, down), "upper")
	b.add(upper, spatial.Translation(down.Mul(d.L1)), model.RevoluteY(), rod(d.M2, d.L2, down), "lower")
	return b.done()
}
