package models

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

// Drone is a quadrotor frame on a floating base with four rotors welded at
// the arm tips.
type Drone struct {
	Mass      float64
	ArmLength float64
	RotorMass float64
	Gravity   float64
}

func NewDrone() *Drone {
	return &Drone{
		Mass:      DefaultMass,
		ArmLength: 0.25,
		RotorMass: 0.05,
		Gravity:   DefaultGravity,
	}
}

var rotorNames = [4]string{"rotor_front", "rotor_left", "rotor_back", "rotor_right"}

func (d *Drone) Build() (*model.Model, error) {
	b := newTree(d.Gravity)
	frame := b.add(model.Root, spatial.Identity(), model.FloatingBase(),
		box(d.Mass, mgl64.Vec3{0.2, 0.2, 0.05}), "frame")
	for i, name := range rotorNames {
		angle := float64(i) * math.Pi / 2
		at := mgl64.Vec3{math.Cos(angle), math.Sin(angle), 0}.Mul(d.ArmLength)
		b.add(frame, spatial.Translation(at), model.FixedJoint(),
			spatial.PointMass(d.RotorMass, mgl64.Vec3{}), name)
	}
	return b.done()
}
