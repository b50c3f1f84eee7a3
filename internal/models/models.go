// Package models is the catalogue of demo kinematic trees used by the CLI.
// Every model is a plain parameter struct whose Build method assembles a
// fresh model.Model.
package models

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// Builder assembles a kinematic tree.
type Builder interface {
	Build() (*model.Model, error)
}

// treeBuilder keeps the first AddBody error so model definitions read as a
// flat list of bodies.
type treeBuilder struct {
	m   *model.Model
	err error
}

func newTree(gravity float64) *treeBuilder {
	m := model.New()
	m.Gravity = mgl64.Vec3{0, 0, -gravity}
	return &treeBuilder{m: m}
}

func (b *treeBuilder) add(parent model.BodyID, x spatial.Transform, j model.Joint, in spatial.Inertia, name string) model.BodyID {
	if b.err != nil {
		return model.BodyID{}
	}
	id, err := b.m.AddBody(parent, x, j, in, name)
	if err != nil {
		b.err = fmt.Errorf("add body %q: %w", name, err)
	}
	return id
}

func (b *treeBuilder) done() (*model.Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.m.Validate(); err != nil {
		return nil, err
	}
	return b.m, nil
}

// rod is a slender uniform link of the given length along dir, starting at
// the body origin.
func rod(mass, length float64, dir mgl64.Vec3) spatial.Inertia {
	dir = dir.Normalize()
	ic := mass * length * length / 12
	// ic about every axis perpendicular to dir, zero along it
	outer := dir.OuterProd3(dir)
	inertia := mgl64.Ident3().Sub(outer).Mul(ic)
	return spatial.NewInertia(mass, dir.Mul(length/2), inertia)
}

// box is a uniform cuboid centred on the body origin.
func box(mass float64, size mgl64.Vec3) spatial.Inertia {
	x2, y2, z2 := size[0]*size[0], size[1]*size[1], size[2]*size[2]
	return spatial.NewInertia(mass, mgl64.Vec3{}, spatial.Diag(
		mass*(y2+z2)/12,
		mass*(x2+z2)/12,
		mass*(x2+y2)/12,
	))
}
