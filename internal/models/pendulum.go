package models

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

// Pendulum is a single rod hanging from the root, swinging about y.
type Pendulum struct {
	Mass    float64
	Length  float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    DefaultMass,
		Length:  DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (p *Pendulum) Build() (*model.Model, error) {
	b := newTree(p.Gravity)
	b.add(model.Root, spatial.Identity(), model.RevoluteY(),
		spatial.PointMass(p.Mass, mgl64.Vec3{0, 0, -p.Length}), "bob")
	return b.done()
}
