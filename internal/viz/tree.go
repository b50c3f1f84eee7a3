package viz

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dyntree/internal/model"
)

// DrawTree projects every body origin of m, as left by its last kinematics
// update, and joins it to its parent. Fixed bodies and the center of mass
// com are drawn as marks. The canvas extent is refitted to the tree; the
// canvas is not cleared.
func DrawTree(c *Canvas, m *model.Model, com mgl64.Vec3) {
	origins := make([]mgl64.Vec3, m.NumBodies())
	for i := range origins {
		origins[i], _ = m.BodyToBase(model.Movable(i), mgl64.Vec3{})
	}
	fixed := make([]mgl64.Vec3, m.NumFixed())
	for i := range fixed {
		fixed[i], _ = m.BodyToBase(model.Fixed(i), mgl64.Vec3{})
	}
	c.FitExtent(append(append([]mgl64.Vec3{com}, origins...), fixed...))

	for i := 1; i < m.NumBodies(); i++ {
		c.Segment(origins[m.Body(i).Parent], origins[i])
	}
	for i, p := range fixed {
		c.Segment(origins[m.FixedBody(i).Parent], p)
		c.Mark(p)
	}
	c.Mark(com)
}
