package models

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

type CartPole struct {
	CartMass   float64
	PoleMass   float64
	PoleLength float64
	Gravity    float64
}

func NewCartPole() *CartPole {
	return &CartPole{
		CartMass:   1.0,
		PoleMass:   0.1,
		PoleLength: 0.5,
		Gravity:    DefaultGravity,
	}
}

// Build places a cart on a rail along x with an upright pole hinged on top.
func (c *CartPole) Build() (*model.Model, error) {
	b := newTree(c.Gravity)
	cart := b.add(model.Root, spatial.Identity(), model.PrismaticX(),
		box(c.CartMass, mgl64.Vec3{0.4, 0.2, 0.1}), "cart")
	b.add(cart, spatial.Translation(mgl64.Vec3{0, 0, 0.05}), model.RevoluteY(),
		rod(c.PoleMass, c.PoleLength, mgl64.Vec3{0, 0, 1}), "pole")
	return b.done()
}
