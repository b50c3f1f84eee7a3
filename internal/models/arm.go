package models

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

// PlanarArm is a chain of identical links rotating about z, with a tool
// welded to the last link.
type PlanarArm struct {
	Links      int
	LinkMass   float64
	LinkLength float64
	ToolMass   float64
	Gravity    float64
}

func NewPlanarArm() *PlanarArm {
	return &PlanarArm{
		Links:      3,
		LinkMass:   DefaultMass,
		LinkLength: 0.5,
		ToolMass:   0.2,
		Gravity:    DefaultGravity,
	}
}

func (a *PlanarArm) Build() (*model.Model, error) {
	if a.Links < 1 {
		return nil, fmt.Errorf("planar arm needs at least one link, got %d", a.Links)
	}

	along := mgl64.Vec3{1, 0, 0}
	tip := spatial.Translation(along.Mul(a.LinkLength))

	b := newTree(a.Gravity)
	parent, x := model.Root, spatial.Identity()
	for i := 1; i <= a.Links; i++ {
		parent = b.add(parent, x, model.RevoluteZ(), rod(a.LinkMass, a.LinkLength, along), fmt.Sprintf("link%d", i))
		x = tip
	}
	b.add(parent, tip, model.FixedJoint(), spatial.PointMass(a.ToolMass, mgl64.Vec3{}), "tool")
	return b.done()
}

// HumanoidArm is a shoulder with three rotational DOF, an elbow, a
// two-DOF wrist and a rigid hand. The multi-DOF joints are split into
// virtual bodies by the model.
type HumanoidArm struct {
	UpperArmMass, UpperArmLength float64
	ForearmMass, ForearmLength   float64
	HandMass                     float64
	Gravity                      float64
}

func NewHumanoidArm() *HumanoidArm {
	return &HumanoidArm{
		UpperArmMass: 2.0, UpperArmLength: 0.3,
		ForearmMass: 1.2, ForearmLength: 0.27,
		HandMass: 0.4,
		Gravity:  DefaultGravity,
	}
}

func (h *HumanoidArm) Build() (*model.Model, error) {
	down := mgl64.Vec3{0, 0, -1}

	b := newTree(h.Gravity)
	torso := b.add(model.Root, spatial.Translation(mgl64.Vec3{0, 0, 1.4}), model.FixedJoint(),
		spatial.Inertia{}, "torso")
	upper := b.add(torso, spatial.Translation(mgl64.Vec3{0, 0.2, 0}),
		model.MultiAxis(spatial.AxisRY, spatial.AxisRX, spatial.AxisRZ),
		rod(h.UpperArmMass, h.UpperArmLength, down), "upper_arm")
	fore := b.add(upper, spatial.Translation(down.Mul(h.UpperArmLength)), model.RevoluteY(),
		rod(h.ForearmMass, h.ForearmLength, down), "forearm")
	wrist := b.add(fore, spatial.Translation(down.Mul(h.ForearmLength)),
		model.MultiAxis(spatial.AxisRY, spatial.AxisRX),
		spatial.PointMass(0.05, mgl64.Vec3{}), "wrist")
	b.add(wrist, spatial.Translation(mgl64.Vec3{0, 0, -0.08}), model.FixedJoint(),
		spatial.PointMass(h.HandMass, mgl64.Vec3{}), "hand")
	return b.done()
}
